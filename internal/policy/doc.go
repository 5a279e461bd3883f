// Package policy decides whether a collection's label set protects it from
// removal. The default policy keeps any labeled collection; a restricted
// policy keeps only collections carrying a configured label name or a label
// matching a configured glob pattern.
package policy
