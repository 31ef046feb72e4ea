// Package uniuri generates random alphanumeric strings from crypto/rand.
// They name bearer token sessions and identify lease owners.
package uniuri
