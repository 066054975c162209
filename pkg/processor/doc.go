// Package processor renders asset styles.
//
// The built-in "thumbnail" processor resizes images with
// github.com/disintegration/imaging according to an ImageMagick style
// geometry:
//
//	100x100   fit inside the box
//	100x100>  fit, but only shrink
//	100x100<  fit, but only enlarge
//	42x42#    fill the box and crop around the center
//	64x64!    exact size, aspect ratio ignored
//
// Extensions add processors to a Registry and select them by name through
// the attachment processor list; Chain runs them in order.
package processor
