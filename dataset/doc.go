/*
Package dataset provides the indexable dataset abstractions the pipeline
feeds from, and the OpDataset decorator that applies an op chain lazily per
retrieved item.

A Dataset yields one sample per index. A BatchDataset additionally yields a
whole batch of independent samples per index, together with a shuffle hook and
an optional pad value; OpDataset detects the batch variant, runs the op chain
on every constituent sample and collates the results into one columnar sample
of stacked tensors.

OpDataset deep-copies every retrieved item before any op runs, so in-place op
mutations never leak into whatever the wrapped dataset stores or caches. That
isolation is also what makes Get safe to call from concurrent workers.
*/
package dataset
