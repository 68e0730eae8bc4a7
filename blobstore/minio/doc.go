// Package minio provides a MinIO implementation of the blobstore.BlobStore
// interface.
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := quadminio.NewStore(client, "games", "farm-1/")
package minio
