// Package medspace is an embedded Go client for the medspace content library
// backed by Valkey or Redis.
//
// The client manages the content catalog and ranks it against free-text
// queries with the same keyword relevance rules as the HTTP API.
//
//	client, _ := medspace.New(ctx, medspace.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Catalog().Upsert(ctx, medspace.Item{
//	    ID: "sepsis-bundle", Title: "Sepsis bundle", Type: medspace.TypeGuideline,
//	    Specialty: "emergency",
//	})
//	page, _ := client.Search().Query(ctx, "sepsis emergency", 5)
//
// Ranking works without a database too:
//
//	hits, err := medspace.Rank("cardiology video", items)
package medspace
