// Package storage provides the collaborators the tlog and tiles packages are
// written against: tile readers over path based blob storage, an in memory
// reference store, the adapter that turns tile fetches into the hash read
// capability, and the unsigned checkpoint codec.
//
// The core packages own none of this; everything here consumes their index
// and geometry algebra and can be replaced wholesale by another store with
// the same path schema.
package storage
