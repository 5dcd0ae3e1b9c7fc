// Package hierseg implements hierarchical region agglomeration over a
// region adjacency graph.
//
// An over-segmentation (watershed basins, superpixels) is loaded into a
// rag.Graph: one node per region, one edge per boundary, each edge carrying
// an affinity in [0,1]. An Agglomerator then greedily contracts the
// lowest-scored edge until a stopping criterion is met; the surviving
// regions are the output segmentation.
//
// How edges are scored is pluggable through the scorer.Policy contract.
// The scorer package ships size-based, extremal-affinity, approximate
// quantile, exact median, and baseline policies; any type implementing the
// contract plugs into the same loop.
//
//	g := rag.NewGraph(numRegions)
//	sizes := rag.NewSizeMap(numRegions)
//	// ... populate sizes, g.AddEdge(u, v, affinity) per boundary ...
//
//	policy, _ := scorer.NewQuantileAffinity(g, g.Affinities(), sizes)
//	a, _ := hierseg.New(g, scorer.OneMinus(policy),
//		hierseg.WithThreshold(0.5),
//	)
//	merged, _ := a.Run(ctx)
//	labels := a.Labels()
//
// Results can be snapshotted with the persistence package and stored on any
// blobstore backend (local disk, memory, S3, MinIO).
package hierseg
