// Package catalog persists the metadata of every placed item in a single JSON
// document at the collection root.
//
// The document holds one container per media kind ("photos", "videos"), each
// mapping identifier to the item's recognized fields:
//
//	{
//	  "photos": {"photos/2011/img_1285.jpg": {"id": "...", "year": "2011"}},
//	  "videos": {}
//	}
//
// A Store must be loaded before it is mutated. Saves replace the document
// atomically through a temporary file in the same directory.
package catalog
