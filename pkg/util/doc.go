// Package util provides shared utility functions for soapkit.
package util
