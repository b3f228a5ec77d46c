// Package io reads and writes karyotype datasets.
//
// # JSON Format
//
// A dataset is a JSON object with a "singleton_contigs" array, ordered by
// size, largest first. Hit clusters and staining bands are [start, end, value]
// triples with 1-based inclusive coordinates:
//
//	{
//	  "singleton_contigs": [
//	    {
//	      "name": "chr1",
//	      "size": 248956422,
//	      "hit_clusters": [[10000, 20000, 12]],
//	      "nrph_hit_clusters": [[10000, 20000, 3]],
//	      "giesma_bands": [[1, 2300000, 1]]
//	    }
//	  ],
//	  "remaining_genome_contig": {"name": "rest", "size": 1200000}
//	}
//
// "giesma_bands" and "remaining_genome_contig" are optional.
//
// # Import
//
// Use [ImportJSON] to read a dataset from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the decoded dataset with
// [karyotype.Validate], so a nil error means the dataset can be drawn.
//
// # Export
//
// [ExportJSON] and [WriteJSON] write the same format back, indented.
//
// # Sources
//
// A [Source] loads datasets by name. [DirSource] reads <name>.json files from
// a directory; [MongoSource] reads documents from a MongoDB collection.
package io
