// Package pcidata provides the Chromebook PCI reference dataset: a static
// mapping from PCI device IDs to the subsystem IDs that identify Chromebook
// boards.
//
// A Dataset is immutable once built and may be shared by any number of
// goroutines without locking. The embedded seed table is returned by
// Default; Load and LoadVerified read a replacement table from disk, the
// latter after checking a detached OpenPGP signature.
package pcidata
