package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/minishop/internal/shop/metrics"
	"github.com/dejobratic/minishop/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// observer wraps every screen action in a span, a duration and outcome
// metric, and a log line.
type observer struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type actionRun struct {
	ctx    context.Context
	span   trace.Span
	start  time.Time
	action string
	obs    *observer
}

func (o *observer) start(ctx context.Context, action string, attrs ...attribute.KeyValue) (context.Context, *actionRun) {
	ctx, span := telemetry.StartSpan(ctx, "console."+action, append(attrs, attribute.String("console.action", action))...)

	return ctx, &actionRun{
		ctx:    ctx,
		span:   span,
		start:  time.Now(),
		action: action,
		obs:    o,
	}
}

func (r *actionRun) annotate(attrs ...attribute.KeyValue) {
	telemetry.Annotate(r.span, attrs...)
}

// finish ends the run and passes notice through.
func (r *actionRun) finish(notice Notice, err error) Notice {
	outcome := outcomeOf(notice, err)
	r.obs.metrics.RecordActionDuration(r.ctx, r.action, time.Since(r.start).Seconds())
	r.obs.metrics.RecordAction(r.ctx, r.action, outcome)

	switch outcome {
	case metrics.OutcomeFailed:
		telemetry.EndSpan(r.span, err)
		r.obs.logger.WarnContext(r.ctx, "console action failed",
			"action", r.action,
			"error", err,
			"notice", notice.Message,
		)
	case metrics.OutcomeInvalid:
		telemetry.EndRejected(r.span, notice.Message)
		r.obs.logger.InfoContext(r.ctx, "console action rejected", "action", r.action, "reason", notice.Message)
	default:
		if err != nil {
			telemetry.Annotate(r.span, attribute.String("refresh.error", err.Error()))
			r.obs.logger.WarnContext(r.ctx, "console action completed, refresh failed",
				"action", r.action,
				"error", err,
			)
		} else {
			r.obs.logger.DebugContext(r.ctx, "console action completed", "action", r.action)
		}
		telemetry.EndSpan(r.span, nil)
	}

	return notice
}

// declined ends a run the user backed out of before any request was sent.
func (r *actionRun) declined() Notice {
	defer r.span.End()
	r.obs.metrics.RecordAction(r.ctx, r.action, metrics.OutcomeDeclined)
	r.obs.logger.DebugContext(r.ctx, "console action declined", "action", r.action)
	return Notice{}
}

func outcomeOf(notice Notice, err error) metrics.Outcome {
	switch {
	case notice.Level == NoticeSuccess:
		return metrics.OutcomeSuccess
	case err != nil || notice.Level == NoticeFailure:
		return metrics.OutcomeFailed
	case notice.Level == NoticeInvalid:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeSuccess
	}
}
