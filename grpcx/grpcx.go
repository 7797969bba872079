/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx exposes httperr errors through gRPC servers.
//
// Handler errors are converted with a Converter exactly like HTTP handlers,
// then projected onto a gRPC status: the code comes from a statusmap.Mapper,
// the message is the client-facing reason and a google.rpc.ErrorInfo detail
// carries the machine-readable code and the HTTP status.
package grpcx

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/code"
	"dirpx.dev/httperr/render"
	"dirpx.dev/httperr/statusmap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"
)

// MetadataHTTPStatus is the ErrorInfo metadata key holding the HTTP status.
const MetadataHTTPStatus = "http_status"

// MetaFn returns extra ErrorInfo metadata for a failed call. It may return
// nil. It cannot replace MetadataHTTPStatus.
type MetaFn func(ctx context.Context, d *httperr.DynamicError) map[string]string

type options struct {
	domain string
	meta   MetaFn
}

// Option configures the interceptors.
type Option func(*options)

// WithDomain sets ErrorInfo.Domain, typically the service name.
func WithDomain(domain string) Option {
	return func(o *options) { o.domain = domain }
}

// WithMeta adds per-call ErrorInfo metadata.
func WithMeta(fn MetaFn) Option {
	return func(o *options) { o.meta = fn }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UnaryServerInterceptor converts handler errors into gRPC status errors.
//
// Errors that already carry a gRPC status (GRPCStatus method) are returned
// unchanged. A nil Mapper uses statusmap.Default().
func UnaryServerInterceptor(c *httperr.Converter, m statusmap.Mapper, opts ...Option) grpc.UnaryServerInterceptor {
	if m == nil {
		m = statusmap.Default()
	}
	o := buildOptions(opts)
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, convert(ctx, c, m, o, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(c *httperr.Converter, m statusmap.Mapper, opts ...Option) grpc.StreamServerInterceptor {
	if m == nil {
		m = statusmap.Default()
	}
	o := buildOptions(opts)
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return convert(ss.Context(), c, m, o, err)
	}
}

func convert(ctx context.Context, c *httperr.Converter, m statusmap.Mapper, o options, err error) error {
	if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
		return err
	}
	d := c.Convert(err)
	var extra map[string]string
	if o.meta != nil {
		extra = o.meta(ctx, d)
	}
	return status(d, m, o.domain, extra).Err()
}

// Status projects d onto a gRPC status with an ErrorInfo detail, and a
// RetryInfo detail when a classified error asks for a retry delay.
// A nil Mapper uses statusmap.Default().
func Status(d *httperr.DynamicError, m statusmap.Mapper, domain string) *gstatus.Status {
	if m == nil {
		m = statusmap.Default()
	}
	return status(d, m, domain, nil)
}

func status(d *httperr.DynamicError, m statusmap.Mapper, domain string, extra map[string]string) *gstatus.Status {
	c := code.Resolve(d)
	base := gstatus.New(m.GRPCCode(d.Status(), c), d.Reason())

	md := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		md[k] = v
	}
	md[MetadataHTTPStatus] = strconv.Itoa(d.Status())

	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   strings.ToUpper(c.String()),
		Domain:   domain,
		Metadata: md,
	}}
	if !d.CatchAll() {
		var ra render.RetryAfterer
		if errors.As(d, &ra) && ra.RetryAfter() > 0 {
			details = append(details, &errdetails.RetryInfo{RetryDelay: durationpb.New(ra.RetryAfter())})
		}
	}

	// Fall back to the bare status if details cannot be attached.
	if with, err := base.WithDetails(details...); err == nil {
		return with
	}
	return base
}

// ExtractInfo pulls the ErrorInfo detail out of a gRPC error, if present.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// HTTPStatus returns the HTTP status recorded in a gRPC error by the
// interceptors.
func HTTPStatus(err error) (int, bool) {
	info, ok := ExtractInfo(err)
	if !ok {
		return 0, false
	}
	st, perr := strconv.Atoi(info.GetMetadata()[MetadataHTTPStatus])
	if perr != nil {
		return 0, false
	}
	return st, true
}
