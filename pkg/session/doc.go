// Package session ties one form to one prediction flow.
//
// A Session owns the attribute schema, the editable form state, a guarded
// predictor and the latest result. Submit validates locally and only calls the
// service when every field is valid; Render turns the current state into
// output through the renderer registry.
//
//	sess, err := session.New(schema.ObesitySchema(),
//		session.WithPredictor(client),
//		session.WithLogger(logger),
//	)
//	_ = sess.SetInput("gender", "Female")
//	presentation, err := sess.Submit(ctx)
//	html, contentType, err := sess.Render(ctx, "vanilla")
package session
