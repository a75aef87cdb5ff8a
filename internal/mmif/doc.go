// Package mmif implements the annotation interchange schema scribe reads and
// writes: a document collection plus views of typed annotations.
//
// A request carries audio/video documents; each processing pass appends a view
// declaring which annotation kinds it will emit (containment metadata) followed
// by the annotations themselves: text documents, tokens with character offsets,
// speech time frames, alignment edges, and sentence groupings. The package owns
// identifier allocation and (de)serialization; it knows nothing about models.
package mmif
