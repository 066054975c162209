// Package gormscope provides gorm scopes for the assets table.
//
// The scopes render the same conditions as package assetstore, so a type
// registered in an [assettype.Registry] filters identically through pgx and
// gorm:
//
//	reg := assettype.NewDefault()
//
//	var records []gormscope.Record
//	err := db.Scopes(
//		gormscope.OfType(reg, assettype.Image),
//		gormscope.NotFurniture(),
//		gormscope.Search("logo"),
//		gormscope.NewestFirst(),
//		gormscope.Paged(page, 0),
//	).Find(&records).Error
//
// A scope built from an unknown type name adds the error to the statement,
// so it surfaces from the finisher method.
package gormscope
