// Package artifacts computes checksums for packaged release artifacts.
package artifacts
