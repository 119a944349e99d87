package rag

import "github.com/brainseg/ragseg/featuremgr"

// The methods in this file let *RAG satisfy priorityfn.RAGView without rag
// importing priorityfn for anything beyond the PriorityFunc type: a
// priority function sees only this narrow read-only surface, never the
// RAG's mutation methods.

// EdgeEndpoints implements priorityfn.RAGView.
func (g *RAG) EdgeEndpoints(edgeID int32) (int32, int32, error) {
	e, err := g.edgeByID(edgeID)
	if err != nil {
		return 0, 0, err
	}
	return e.u, e.v, nil
}

// NodeFeatureVector implements priorityfn.RAGView.
func (g *RAG) NodeFeatureVector(nodeID int32) ([]float64, error) {
	n, err := g.nodeByID(nodeID)
	if err != nil {
		return nil, err
	}
	feats, err := g.fm.NodeFeatures(n.cache)
	if err != nil {
		return nil, wrapFeatureErr(err)
	}
	return feats, nil
}

// EdgeFeatureVector implements priorityfn.RAGView.
func (g *RAG) EdgeFeatureVector(edgeID int32, leftNode, rightNode []float64) ([]float64, error) {
	e, err := g.edgeByID(edgeID)
	if err != nil {
		return nil, err
	}
	feats, err := g.fm.EdgeFeatures(e.cache, leftNode, rightNode)
	if err != nil {
		return nil, wrapFeatureErr(err)
	}
	return feats, nil
}

// FeatureManager implements priorityfn.RAGView.
func (g *RAG) FeatureManager() featuremgr.FeatureManager { return g.fm }

// EdgeCache implements priorityfn.RAGView.
func (g *RAG) EdgeCache(edgeID int32) (featuremgr.Cache, error) {
	e, err := g.edgeByID(edgeID)
	if err != nil {
		return nil, err
	}
	return e.cache, nil
}

// Classify implements priorityfn.RAGView. With no classifier configured it
// returns a neutral 0.5, matching the "no information" default elsewhere
// in this module (HistogramManager.ApproxMedian has the same fallback).
func (g *RAG) Classify(x []float64) (float64, error) {
	if g.classifier == nil {
		return 0.5, nil
	}
	return g.classifier.Predict(x)
}
