package session

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var ErrUnknownAccount = errors.New("unknown account")

// AccountStatus describes whether a configured account has a usable session.
type AccountStatus struct {
	Label string `json:"label"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Registry holds one long-lived session per configured account label. It is
// built once at startup and only read afterwards.
type Registry struct {
	labels   []string
	sessions map[string]*Session
	initErrs map[string]error
}

// NewRegistry builds a session for every account. Accounts that fail to
// initialize are logged once here and remembered, so lookups can report
// the original cause.
func NewRegistry(accounts []Credentials, opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := &Registry{
		labels:   make([]string, 0, len(accounts)),
		sessions: make(map[string]*Session, len(accounts)),
		initErrs: make(map[string]error),
	}

	for _, creds := range accounts {
		if _, seen := r.sessions[creds.Label]; seen {
			continue
		}
		if _, seen := r.initErrs[creds.Label]; seen {
			continue
		}
		r.labels = append(r.labels, creds.Label)

		s, err := New(creds, opts)
		if err != nil {
			logger.WithError(err).WithField("account", creds.Label).Error("Error initializing Alpaca trading client")
			r.initErrs[creds.Label] = err
			continue
		}
		r.sessions[creds.Label] = s
	}

	return r
}

// Labels returns account labels in configured order.
func (r *Registry) Labels() []string {
	labels := make([]string, len(r.labels))
	copy(labels, r.labels)
	return labels
}

func (r *Registry) Get(label string) (*Session, error) {
	if s, ok := r.sessions[label]; ok {
		return s, nil
	}
	if err, ok := r.initErrs[label]; ok {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, label)
}

func (r *Registry) Status() []AccountStatus {
	statuses := make([]AccountStatus, 0, len(r.labels))
	for _, label := range r.labels {
		st := AccountStatus{Label: label, Ready: true}
		if err, ok := r.initErrs[label]; ok {
			st.Ready = false
			st.Error = err.Error()
		}
		statuses = append(statuses, st)
	}
	return statuses
}
