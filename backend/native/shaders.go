package native

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/solid.wgsl
var solidShaderSource string

//go:embed shaders/textured.wgsl
var texturedShaderSource string

// compileShader compiles WGSL source to SPIR-V words.
func compileShader(name, source string) ([]uint32, error) {
	if source == "" {
		return nil, fmt.Errorf("%s shader source is empty", name)
	}
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile %s shader: SPIR-V size %d not a multiple of 4", name, len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// createShaderModule compiles source and creates a shader module from it.
func createShaderModule(device hal.Device, name, source string) (hal.ShaderModule, error) {
	spirv, err := compileShader(name, source)
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gp_" + name + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", name, err)
	}
	return module, nil
}
