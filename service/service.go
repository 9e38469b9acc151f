// Package service exposes the operations of an integer tree as rpc
// handlers. A tree is not safe for concurrent use, so the service
// serializes every operation on it.
package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/lopatinaanna/binarytree/container/tree"
	errs "github.com/lopatinaanna/binarytree/errors"
	"github.com/lopatinaanna/binarytree/logs"
	"github.com/lopatinaanna/binarytree/rpcs"
)

// ErrMissingValue is returned when a request does not carry
// the value to operate on
var ErrMissingValue = errs.New(errs.CodeInvalidArgument, "request has no value")

// ValueRequest is the body of the requests that operate on a value
type ValueRequest struct {
	Value *int `json:"value"`
}

// OrderRequest is the body of a traversal request
type OrderRequest struct {
	Order string `json:"order"`
}

// AddResponse is returned after adding a value
type AddResponse struct {
	Len int `json:"len"`
}

// RemoveResponse is returned after removing a value
type RemoveResponse struct {
	Removed bool `json:"removed"`
	Len     int  `json:"len"`
}

// ContainsResponse is returned after looking up a value
type ContainsResponse struct {
	Found bool `json:"found"`
}

// ValueResponse carries a single value of the tree
type ValueResponse struct {
	Value int `json:"value"`
}

// TraverseResponse carries the values of the tree in a given order
type TraverseResponse struct {
	Order  string `json:"order"`
	Values []int  `json:"values"`
}

// LenResponse carries the number of values in the tree
type LenResponse struct {
	Len int `json:"len"`
}

// Service serves the operations of a tree
type Service struct {
	mu     sync.Mutex
	tree   *tree.Tree[int]
	logger logs.Logger
}

// New creates a service for t. Every change made to t through the
// service is logged
func New(t *tree.Tree[int], logger logs.Logger) *Service {
	logger = logger.ForClass("service", "Service")
	t.OnAdded(tree.LogObserver[int](logger))
	t.OnRemoved(tree.LogObserver[int](logger))

	return &Service{tree: t, logger: logger}
}

// Bind registers the handlers of the service in the binder
func (s *Service) Bind(binder *rpcs.HttpBinder) {
	valueFactory := rpcs.EntityFactoryFunc(func() interface{} { return &ValueRequest{} })
	orderFactory := rpcs.EntityFactoryFunc(func() interface{} { return &OrderRequest{} })
	noBody := rpcs.EntityFactoryFunc(func() interface{} { return nil })

	binder.Bind(http.MethodPost, "/add", rpcs.HandlerFunc(s.Add), valueFactory)
	binder.Bind(http.MethodPost, "/remove", rpcs.HandlerFunc(s.Remove), valueFactory)
	binder.Bind(http.MethodPost, "/contains", rpcs.HandlerFunc(s.Contains), valueFactory)
	binder.Bind(http.MethodPost, "/traverse", rpcs.HandlerFunc(s.Traverse), orderFactory)
	binder.Bind(http.MethodPost, "/min", rpcs.HandlerFunc(s.Min), noBody)
	binder.Bind(http.MethodPost, "/max", rpcs.HandlerFunc(s.Max), noBody)
	binder.Bind(http.MethodPost, "/len", rpcs.HandlerFunc(s.Len), noBody)
}

func requestValue(ctx context.Context, v interface{}) (int, error) {
	req, ok := v.(*ValueRequest)
	if !ok || req.Value == nil {
		return 0, rpcs.HttpBadRequest(ctx, ErrMissingValue)
	}

	return *req.Value, nil
}

// toHttpError maps the errors of a tree to the http status
// that describes them
func toHttpError(ctx context.Context, err error) error {
	var e *errs.Error
	if !errors.As(err, &e) {
		return rpcs.HttpInternalServerError(ctx, err)
	}

	switch e.ErrorCode {
	case errs.CodeInvalidArgument:
		return rpcs.HttpBadRequest(ctx, err)
	case errs.CodeEmptyContainer:
		return rpcs.HttpNotFound(ctx, err)
	default:
		return rpcs.HttpInternalServerError(ctx, err)
	}
}

// Add adds the value of the request to the tree
func (s *Service) Add(ctx context.Context, v interface{}) (interface{}, error) {
	value, err := requestValue(ctx, v)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tree.Add(value); err != nil {
		return nil, toHttpError(ctx, err)
	}

	return &AddResponse{Len: s.tree.Len()}, nil
}

// Remove removes the value of the request from the tree
func (s *Service) Remove(ctx context.Context, v interface{}) (interface{}, error) {
	value, err := requestValue(ctx, v)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.tree.Remove(value)
	if err != nil {
		return nil, toHttpError(ctx, err)
	}

	return &RemoveResponse{Removed: removed, Len: s.tree.Len()}, nil
}

// Contains looks up the value of the request in the tree
func (s *Service) Contains(ctx context.Context, v interface{}) (interface{}, error) {
	value, err := requestValue(ctx, v)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &ContainsResponse{Found: s.tree.Contains(value)}, nil
}

// Traverse returns the values of the tree in the order of the request
func (s *Service) Traverse(ctx context.Context, v interface{}) (interface{}, error) {
	var name string
	if req, ok := v.(*OrderRequest); ok {
		name = req.Order
	}

	order, err := tree.ParseOrder(name)
	if err != nil {
		return nil, toHttpError(ctx, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &TraverseResponse{Order: order.String(), Values: s.tree.Values(order)}, nil
}

// Min returns the lowest value of the tree
func (s *Service) Min(ctx context.Context, v interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	min, err := s.tree.Min()
	if err != nil {
		return nil, toHttpError(ctx, err)
	}

	return &ValueResponse{Value: min}, nil
}

// Max returns the highest value of the tree
func (s *Service) Max(ctx context.Context, v interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max, err := s.tree.Max()
	if err != nil {
		return nil, toHttpError(ctx, err)
	}

	return &ValueResponse{Value: max}, nil
}

// Len returns the number of values in the tree
func (s *Service) Len(ctx context.Context, v interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &LenResponse{Len: s.tree.Len()}, nil
}
