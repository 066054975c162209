// Package asset holds the Asset record and the behaviour of its attached
// file: storage paths and URLs, thumbnails, dimensions and style rendering.
//
//	cfg, _ := attachment.Build(lookup, nil)
//	a := asset.New("holiday.jpg")
//	at, err := asset.NewAttachment(a, cfg, asset.WithRoot("/srv/site"))
//	if err != nil {
//		return err
//	}
//	if err := at.Store(ctx, file, header.Size); err != nil {
//		return err
//	}
//	icon := at.Thumbnail("icon")
package asset
