// Package s3 provides an AWS S3 implementation of the blobstore.BlobStore
// interface, plus DDBCommitStore, which moves the CURRENT pointer into
// DynamoDB so concurrent writers cannot overwrite each other's commits.
//
// # Usage
//
//	store, err := s3.New(ctx, "games", func(o *s3.Options) {
//	    o.Region = "eu-central-1"
//	    o.Prefix = "farm-1/"
//	})
//	nav, err := quadnav.Open(ctx, store)
package s3
