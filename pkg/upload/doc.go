// Package upload turns picked image files into data URIs for dialog fields.
//
// Images never leave the process: a Decoder reads the file, sniffs its
// real content type from the leading bytes (the name and any client
// supplied type are not trusted), enforces the size limit and the image
// allow list, and returns a "data:<mime>;base64,..." string ready for a
// form.KindImage field.
//
// # Usage
//
//	dec := upload.NewDecoder(upload.DefaultConfig())
//	uri, err := dec.DecodeFile("photo.jpg")
//	if errors.Is(err, upload.ErrTooLarge) {
//	    // "PNG, JPG up to 10MB"
//	}
//
// # Asynchronous decoding
//
// Loader runs decodes in the background and applies the result through a
// callback. Picking a new file supersedes a pending one; a stale result is
// dropped rather than applied:
//
//	l := upload.NewLoader(dec)
//	l.Load(ctx, f, func(uri string) { dialog.SetText("photo", uri) }, nil)
//	l.Wait()
package upload
