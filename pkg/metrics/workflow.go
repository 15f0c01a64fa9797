// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// WorkflowMetrics counts role and team request events. A nil receiver is a no-op.
type WorkflowMetrics struct {
	roleRequests   *prometheus.CounterVec
	roleDecisions  *prometheus.CounterVec
	teamRequests   *prometheus.CounterVec
	decisionErrors *prometheus.CounterVec
}

func newWorkflowMetrics() *WorkflowMetrics {
	return &WorkflowMetrics{
		roleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackhub_role_requests_submitted_total",
			Help: "Role requests submitted, by requested role",
		}, []string{"role"}),
		roleDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackhub_role_request_decisions_total",
			Help: "Role request decisions committed, by decision",
		}, []string{"decision"}),
		decisionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackhub_role_request_decision_errors_total",
			Help: "Role request decisions rolled back, by error kind",
		}, []string{"kind"}),
		teamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackhub_team_request_events_total",
			Help: "Team request lifecycle events",
		}, []string{"event"}),
	}
}

func (m *WorkflowMetrics) register(r prometheus.Registerer) {
	r.MustRegister(m.roleRequests, m.roleDecisions, m.decisionErrors, m.teamRequests)
}

func (m *WorkflowMetrics) RoleRequestSubmitted(role string) {
	if m == nil {
		return
	}
	m.roleRequests.WithLabelValues(role).Inc()
}

func (m *WorkflowMetrics) RoleRequestDecided(decision string) {
	if m == nil {
		return
	}
	m.roleDecisions.WithLabelValues(decision).Inc()
}

func (m *WorkflowMetrics) RoleDecisionFailed(kind string) {
	if m == nil {
		return
	}
	m.decisionErrors.WithLabelValues(kind).Inc()
}

// TeamRequestEvent records created, accepted, rejected or expired events
func (m *WorkflowMetrics) TeamRequestEvent(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.teamRequests.WithLabelValues(event).Add(float64(n))
}
