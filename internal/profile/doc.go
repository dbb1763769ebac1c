// Package profile loads the optional YAML author profile that seeds the CV
// and performance prompts.
package profile
