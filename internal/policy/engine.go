package policy

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/cedar-policy/cedar-go"
)

//go:embed policies/*.cedar
var embeddedPolicies embed.FS

// Config contains options for the Engine.
type Config struct {
	// Logger receives one debug record per decision. Defaults to slog.Default().
	Logger *slog.Logger

	// Policies overrides the embedded policy files. Every *.cedar file at the
	// root of the FS is loaded as one policy named after the file.
	Policies fs.FS
}

// Engine evaluates authorization requests against the Cedar policy set.
type Engine struct {
	policies *cedar.PolicySet
	ids      []string
	logger   *slog.Logger
}

// NewEngine loads the policy set and returns a ready Engine.
func NewEngine(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsys := cfg.Policies
	if fsys == nil {
		sub, err := fs.Sub(embeddedPolicies, "policies")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded policies: %w", err)
		}
		fsys = sub
	}

	ps, ids, err := loadPolicies(fsys)
	if err != nil {
		return nil, err
	}

	return &Engine{
		policies: ps,
		ids:      ids,
		logger:   logger,
	}, nil
}

// MustNewEngine is NewEngine for the embedded policy set, which is known to parse.
func MustNewEngine(logger *slog.Logger) *Engine {
	engine, err := NewEngine(Config{Logger: logger})
	if err != nil {
		panic(err)
	}
	return engine
}

func loadPolicies(fsys fs.FS) (*cedar.PolicySet, []string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list policies: %w", err)
	}

	ps := cedar.NewPolicySet()
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".cedar" {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read policy %s: %w", name, err)
		}

		var p cedar.Policy
		if err := p.UnmarshalCedar(body); err != nil {
			return nil, nil, fmt.Errorf("failed to parse policy %s: %w", name, err)
		}

		id := strings.TrimSuffix(name, ".cedar")
		ps.Add(cedar.PolicyID(id), &p)
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, nil, fmt.Errorf("no policies found")
	}
	sort.Strings(ids)

	return ps, ids, nil
}

// Decide answers whether req.Caller may perform req.Operation on req.Resource.
func (e *Engine) Decide(ctx context.Context, req Request) Decision {
	start := time.Now()

	if !IsValidAction(req.Resource.Kind, req.Operation) {
		d := Decision{
			Reason:   ReasonUnknownAction,
			Message:  reasonMessages[ReasonUnknownAction],
			Duration: time.Since(start),
		}
		e.logDecision(ctx, req, d)
		return d
	}

	decision, diag := cedar.Authorize(e.policies, buildEntities(req), buildCedarRequest(req))

	d := Decision{
		Allowed: decision == cedar.Allow,
		Reason:  ReasonPolicyDenied,
	}
	if d.Allowed {
		d.Reason = ReasonAllowed
	}
	if len(diag.Reasons) > 0 {
		d.PolicyID = string(diag.Reasons[0].PolicyID)
	}
	if !d.Allowed {
		for _, r := range diag.Reasons {
			if reason, ok := forbidReasons[string(r.PolicyID)]; ok {
				d.Reason = reason
				d.PolicyID = string(r.PolicyID)
				break
			}
		}
	}
	d.Message = reasonMessages[d.Reason]
	d.Duration = time.Since(start)

	for _, err := range diag.Errors {
		e.logger.ErrorContext(ctx, "policy evaluation error",
			"policy", err.PolicyID,
			"error", err.Message,
		)
	}
	e.logDecision(ctx, req, d)

	return d
}

func (e *Engine) logDecision(ctx context.Context, req Request, d Decision) {
	e.logger.DebugContext(ctx, "authorization decision",
		"principal", req.Caller.ID,
		"role", req.Caller.Role,
		"action", Action(req.Resource.Kind, req.Operation),
		"resource_id", req.Resource.ID,
		"resource_owner", req.Resource.Owner,
		"decision", d.Allowed,
		"reason", d.Reason,
		"policy_id", d.PolicyID,
		"duration_us", d.Duration.Microseconds(),
	)
}

// PolicyIDs returns the loaded policy ids in sorted order.
func (e *Engine) PolicyIDs() []string {
	out := make([]string, len(e.ids))
	copy(out, e.ids)
	return out
}
