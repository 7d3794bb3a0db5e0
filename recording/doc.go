// Package recording provides a gp.Backend that records calls instead of
// drawing.
//
// A Recorder stands in for a GPU: it hands out handles, keeps uploaded
// buffer contents in memory and logs every call as a typed Call value
// (CreatePipelineCall, UpdateBufferCall, DrawCall, ...). This makes the
// exact output of gp's batching observable: which pipelines were bound,
// which uniforms were uploaded and how many draw calls a frame produced.
//
// # Example
//
//	rec := recording.NewRecorder()
//	ctx, err := gp.New(rec)
//	if err != nil {
//		return err
//	}
//	ctx.Begin(800, 600)
//	ctx.SetColor(1, 0, 0, 1)
//	ctx.DrawFilledRects(rects)
//	ctx.Flush()
//	ctx.End()
//
//	for _, d := range rec.Draws() {
//		fmt.Println(d.First, d.Count)
//	}
//
// A Recording obtained from Finish can be replayed to another backend with
// Playback, translating the pipeline and buffer handles it created.
//
// The recorder registers itself in gp/backend as "recording".
package recording
