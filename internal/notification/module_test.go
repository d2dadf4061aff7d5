package notification

import (
	"context"
	"errors"
	"testing"

	"homeloans_backend/internal/email"
	"homeloans_backend/internal/events"
	leadrepo "homeloans_backend/internal/leads/repository"
	"homeloans_backend/platform/logger"

	"github.com/google/uuid"
)

const testBrokerEmail = "broker@burnabyhomeloans.example"

type testSender struct {
	to     []string
	alerts []email.LeadAlert
	err    error
}

func (s *testSender) SendLeadAlert(_ context.Context, toEmail string, alert email.LeadAlert) error {
	s.to = append(s.to, toEmail)
	s.alerts = append(s.alerts, alert)
	return s.err
}

type testLeads map[uuid.UUID]leadrepo.Lead

func (l testLeads) GetByID(_ context.Context, id uuid.UUID) (leadrepo.Lead, error) {
	lead, ok := l[id]
	if !ok {
		return leadrepo.Lead{}, leadrepo.ErrNotFound
	}
	return lead, nil
}

type testQueue struct {
	ids []uuid.UUID
	err error
}

func (q *testQueue) EnqueueLeadAlert(_ context.Context, id uuid.UUID) error {
	q.ids = append(q.ids, id)
	return q.err
}

func storedLead(score string) (uuid.UUID, testLeads) {
	id := uuid.New()
	income := 120000.0
	return id, testLeads{id: {ID: id, SessionID: "s-1", LeadScore: score, AnnualIncome: &income, FixedRate: 5.5}}
}

func TestLeadQualifiedSendsInlineForHotAndWarm(t *testing.T) {
	for _, score := range []string{"hot", "warm"} {
		t.Run(score, func(t *testing.T) {
			id, leads := storedLead(score)
			sender := &testSender{}
			m := New(sender, leads, testBrokerEmail, logger.Discard())

			if err := m.Handle(context.Background(), events.LeadQualified{LeadID: id, LeadScore: score}); err != nil {
				t.Fatalf("handle: %v", err)
			}
			if len(sender.alerts) != 1 || sender.to[0] != testBrokerEmail {
				t.Fatalf("expected one alert to broker, got %v", sender.to)
			}
			got := sender.alerts[0]
			if got.LeadID != id.String() || got.LeadScore != score || got.AnnualIncome == nil || *got.AnnualIncome != 120000 {
				t.Fatalf("unexpected alert %+v", got)
			}
		})
	}
}

func TestLeadQualifiedSkipsColdLeads(t *testing.T) {
	id, leads := storedLead("cold")
	sender := &testSender{}
	m := New(sender, leads, testBrokerEmail, logger.Discard())

	if err := m.Handle(context.Background(), events.LeadQualified{LeadID: id, LeadScore: "cold"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.alerts) != 0 {
		t.Fatalf("expected no alert for cold lead, got %d", len(sender.alerts))
	}
}

func TestLeadQualifiedWithoutBrokerEmailIsNoop(t *testing.T) {
	id, leads := storedLead("hot")
	sender := &testSender{}
	queue := &testQueue{}
	m := New(sender, leads, "", logger.Discard())
	m.SetAlertQueue(queue)

	if err := m.Handle(context.Background(), events.LeadQualified{LeadID: id, LeadScore: "hot"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.alerts) != 0 || len(queue.ids) != 0 {
		t.Fatal("expected alerts disabled without broker email")
	}
}

func TestLeadQualifiedUsesQueueWhenConfigured(t *testing.T) {
	id, leads := storedLead("hot")
	sender := &testSender{}
	queue := &testQueue{}
	m := New(sender, leads, testBrokerEmail, logger.Discard())
	m.SetAlertQueue(queue)

	if err := m.Handle(context.Background(), events.LeadQualified{LeadID: id, LeadScore: "hot"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.ids) != 1 || queue.ids[0] != id {
		t.Fatalf("expected lead queued, got %v", queue.ids)
	}
	if len(sender.alerts) != 0 {
		t.Fatal("expected no inline send when queued")
	}

	queue.err = errors.New("redis down")
	if err := m.Handle(context.Background(), events.LeadQualified{LeadID: id, LeadScore: "hot"}); err == nil {
		t.Fatal("expected enqueue failure to surface")
	}
}

func TestDeliverLeadAlert(t *testing.T) {
	id, leads := storedLead("hot")

	t.Run("missing lead is dropped", func(t *testing.T) {
		sender := &testSender{}
		m := New(sender, leads, testBrokerEmail, logger.Discard())
		if err := m.DeliverLeadAlert(context.Background(), uuid.New()); err != nil {
			t.Fatalf("expected missing lead to be dropped, got %v", err)
		}
		if len(sender.alerts) != 0 {
			t.Fatal("expected no alert")
		}
	})

	t.Run("send failure is returned", func(t *testing.T) {
		sender := &testSender{err: errors.New("smtp 421")}
		m := New(sender, leads, testBrokerEmail, logger.Discard())
		if err := m.DeliverLeadAlert(context.Background(), id); err == nil {
			t.Fatal("expected send error")
		}
	})
}

func TestRegisterHandlersOnBus(t *testing.T) {
	id, leads := storedLead("warm")
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.Discard())
	New(sender, leads, testBrokerEmail, logger.Discard()).RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), events.LeadQualified{LeadID: id, LeadScore: "warm"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := bus.PublishSync(context.Background(), events.RatesUpdated{FixedRate: 5.1}); err != nil {
		t.Fatalf("publish rates: %v", err)
	}
	if len(sender.alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(sender.alerts))
	}
}
