// Package plex implements the server connection used by the sweep engine:
// listing libraries and collections, fetching collection labels, and deleting
// collections over the Plex HTTP API.
package plex
