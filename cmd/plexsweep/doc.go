// Command plexsweep classifies Plex collections by label and removes the
// unprotected ones, dry-run by default.
package main
