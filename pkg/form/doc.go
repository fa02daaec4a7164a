// Package form provides rule-driven dialog state with validation and
// all-or-nothing submission.
//
// # Overview
//
// A dialog is described by a Schema: the fields it owns, how each field is
// judged empty, and an optional set of mutually exclusive modes. Each mode
// names the completion group that must be satisfied while it is active.
// Schemas are declared in YAML so that near-identical dialogs differ only in
// data:
//
//	forms:
//	  - name: create-post
//	    default_mode: select-event
//	    fields:
//	      - {name: photo, kind: image, required: true,
//	         message: {id: photo_required, default: "Photo is required"}}
//	      - {name: caption, kind: text, required: true, sanitize: true,
//	         message: {id: caption_required, default: "Caption is required"}}
//	      - {name: event, kind: select}
//	      - {name: hashtags, kind: tuple, size: 3, prefix: "#"}
//	    modes:
//	      - name: select-event
//	        error_key: eventOrHashtags
//	        fields: [event]
//	        message: {id: event_or_hashtags_required,
//	                  default: "Please select an event or enter three hashtags"}
//	      - name: hashtags
//	        error_key: eventOrHashtags
//	        fields: [hashtags]
//	        message: {id: hashtags_required, default: "All three hashtags are required"}
//
// # Controller
//
// A Controller owns one dialog's State and turns a valid State into a record:
//
//	posts := form.NewController(schema, buildPost, feed.Prepend)
//	posts.Open()
//	posts.SetText("caption", "Hello")
//	post, ok := posts.Submit(ctx)
//
// Validation is a pure function of the fields and the active mode (Validate).
// Field setters never run it; they only clear the error of the key they
// just satisfied (optimistic clearing). Submit runs the full pass, and on
// success builds the record, resets the dialog, closes it and hands the
// record to the commit callback.
package form
