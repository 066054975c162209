// Package assettype classifies uploaded files into named asset types by MIME
// type and produces filter conditions selecting records of a type.
//
// A Registry is created once at startup, populated with the built-in types and
// any types added by extensions, and then shared by reference:
//
//	reg := assettype.NewDefault()
//	_ = reg.Register("gps", []string{"application/gpx+xml", "application/tcx+xml"})
//
//	reg.Classify("image/jpeg")           // "image"
//	reg.Classify("application/zip")      // "other"
//	reg.Is(assettype.Movie, "video/mp4") // true
//
// # Built-in Types
//
// Types are checked in registration order and the first match wins:
//
//	image  png, x-png, jpeg, pjpeg, jpg, gif
//	video  mpeg, mp4, ogg, quicktime, x-ms-wmv, x-flv
//	audio  mpeg, mpg, ogg, application/ogg, x-ms-wma, vnd.rn-realaudio, x-wav
//	swf    application/x-shockwave-flash
//	pdf    application/pdf
//	movie  alias of swf and video
//
// "other" is not registered. It matches anything outside the media types
// (image, audio and movie by default), so a PDF is both "pdf" and "other".
//
// # Re-registration
//
// Registering a known name with the same MIME set is a no-op. A different set
// fails with *DuplicateTypeError unless WithOverride is passed.
//
// # Filter Conditions
//
// Condition and NotCondition return composable SQL predicates over the content
// type column:
//
//	images, _ := reg.Condition(assettype.Image)
//	docs, _ := reg.Condition(assettype.Other)
//	cond := assettype.Or(images, docs)
//
//	sql, args := cond.SQL()          // ? placeholders
//	sql, args = cond.Postgres(0)      // $1, $2, ...
package assettype
