// Package observability carries tracing and metric publication for the
// resolver and REST surfaces.
package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer records one X-Ray subsegment per resolved field. Deployments with
// tracing disabled never construct one; callers treat a nil Tracer as off.
type Tracer struct {
	serviceName string
}

// NewTracer creates a tracer publishing under the given service name
func NewTracer(serviceName string) *Tracer {
	return &Tracer{serviceName: serviceName}
}

// TraceField runs fn inside a subsegment named <service>.<field>. The field
// name is annotated so traces filter per operation (getPage, follow, ...);
// fn's error closes the segment as a fault.
func (t *Tracer) TraceField(ctx context.Context, field string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, t.serviceName+"."+field)
	if seg == nil {
		// No ambient segment to attach to (local runs); trace nothing.
		return fn(ctx)
	}
	seg.AddAnnotation("field", field)

	err := fn(ctx)
	seg.Close(err)
	return err
}
