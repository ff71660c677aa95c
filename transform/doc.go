/*
Package transform provides the built-in sample-level ops: shape manipulation,
value binarization, affine rescaling and noise synthesis.

Every op here embeds ops.SampleBase, so the whole package is admissible in the
Pipeline and RecordWriter components. RegisterDefaults exposes the ops as
versioned registry factories for configuration-driven pipelines.
*/
package transform
