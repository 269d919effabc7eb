package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func envelope(t *testing.T, typ string, data string) Envelope {
	t.Helper()
	return Envelope{Type: typ, Data: json.RawMessage(data)}
}

func TestMapEnvelope_AnswerSubmitted(t *testing.T) {
	env := envelope(t, "answer_submitted",
		`{"matchId":12,"agentAddr":"0xabc","answerText":"Blue","neuronBurned":"10000000000000000000"}`)

	ev, ok, err := MapEnvelope(env, time.Now())
	if err != nil || !ok {
		t.Fatalf("expected mapped event, got ok=%v err=%v", ok, err)
	}
	if ev.Kind != KindAnswer {
		t.Errorf("expected kind answer, got %s", ev.Kind)
	}
	if ev.MatchID != 12 || ev.Agent != "0xabc" || ev.Answer != "Blue" {
		t.Errorf("unexpected fields: %+v", ev)
	}
	if ev.NeuronBurned != "10000000000000000000" {
		t.Errorf("burn amount must stay a base-unit string, got %q", ev.NeuronBurned)
	}
	if ev.ID == "" {
		t.Error("mapped event must carry a client id")
	}
}

func TestMapEnvelope_MatchSettledBecomesMatchEnd(t *testing.T) {
	env := envelope(t, "match_settled",
		`{"matchId":9,"winnerAddr":"0xwinner","prizeMon":"5000000000000000000"}`)

	ev, ok, err := MapEnvelope(env, time.Now())
	if err != nil || !ok {
		t.Fatalf("expected mapped event, got ok=%v err=%v", ok, err)
	}
	if ev.Kind != KindMatchEnd {
		t.Errorf("expected kind match_end, got %s", ev.Kind)
	}
	if ev.Winner != "0xwinner" || ev.Prize != "5000000000000000000" {
		t.Errorf("unexpected fields: %+v", ev)
	}
}

func TestMapEnvelope_TimeoutMapsToCancelled(t *testing.T) {
	for _, typ := range []string{"match_cancelled", "match_timeout"} {
		env := envelope(t, typ, `{"matchId":3,"reason":"no answers"}`)
		ev, ok, err := MapEnvelope(env, time.Now())
		if err != nil || !ok {
			t.Fatalf("%s: expected mapped event, got ok=%v err=%v", typ, ok, err)
		}
		if ev.Kind != KindMatchCancelled {
			t.Errorf("%s: expected kind match_cancelled, got %s", typ, ev.Kind)
		}
		if ev.Reason != "no answers" {
			t.Errorf("%s: reason not carried: %+v", typ, ev)
		}
	}
}

func TestMapEnvelope_CommentaryUsesCreatedAt(t *testing.T) {
	env := envelope(t, "commentary",
		`{"matchId":4,"agentId":"The Oracle","text":"bold move","createdAt":"2026-08-20T10:00:00Z"}`)

	ev, ok, err := MapEnvelope(env, time.Now())
	if err != nil || !ok {
		t.Fatalf("expected mapped event, got ok=%v err=%v", ok, err)
	}
	want := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if !ev.ReceivedAt.Equal(want) {
		t.Errorf("expected createdAt timestamp, got %v", ev.ReceivedAt)
	}
	if ev.Persona != "The Oracle" || ev.Commentary != "bold move" {
		t.Errorf("unexpected fields: %+v", ev)
	}
}

func TestMapEnvelope_BountyLifecycle(t *testing.T) {
	cases := []struct {
		typ  string
		data string
		kind Kind
	}{
		{"bounty_created", `{"bountyId":1,"agentAddr":"0xc","rewardAmount":"7000000000000000000"}`, KindBountyCreated},
		{"bounty_agent_joined", `{"bountyId":1,"agentAddr":"0xa"}`, KindBountyAgentJoined},
		{"bounty_answer_submitted", `{"bountyId":1,"agentAddr":"0xa","answerText":"42"}`, KindBountyAnswerSubmitted},
		{"bounty_answer_evaluated", `{"bountyId":1,"agentAddr":"0xa","totalScore":8.5}`, KindBountyAnswerEvaluated},
		{"bounty_settled", `{"bountyId":1,"winnerAddr":"0xa","rewardAmount":"7000000000000000000"}`, KindBountySettled},
		{"winner_reward_claimed", `{"bountyId":1,"agentAddr":"0xa","amount":"7000000000000000000"}`, KindWinnerRewardClaimed},
		{"refund_claimed", `{"bountyId":1,"agentAddr":"0xb","amount":"1000"}`, KindRefundClaimed},
		{"reputation_updated", `{"agentAddr":"0xa","score":91.5}`, KindReputationUpdated},
	}

	for _, tc := range cases {
		ev, ok, err := MapEnvelope(envelope(t, tc.typ, tc.data), time.Now())
		if err != nil || !ok {
			t.Fatalf("%s: expected mapped event, got ok=%v err=%v", tc.typ, ok, err)
		}
		if ev.Kind != tc.kind {
			t.Errorf("%s: expected kind %s, got %s", tc.typ, tc.kind, ev.Kind)
		}
	}
}

func TestMapEnvelope_UnknownTypeDropped(t *testing.T) {
	ev, ok, err := MapEnvelope(envelope(t, "heartbeat", `{}`), time.Now())
	if err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if ok {
		t.Errorf("unknown type must be dropped, got %+v", ev)
	}
}

func TestMapEnvelope_MalformedPayloadErrors(t *testing.T) {
	_, ok, err := MapEnvelope(envelope(t, "answer_submitted", `{"matchId":"not-a-number`), time.Now())
	if err == nil {
		t.Error("expected error for malformed payload")
	}
	if ok {
		t.Error("malformed payload must not produce an event")
	}
}

func TestMapEnvelope_UniqueIDs(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ev, ok, err := MapEnvelope(envelope(t, "agent_registered", `{"matchId":1,"agentAddr":"0xa"}`), now)
		if err != nil || !ok {
			t.Fatal("mapping failed")
		}
		if seen[ev.ID] {
			t.Fatalf("duplicate id %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}

func TestEventLog_BoundedMostRecentFirst(t *testing.T) {
	log := NewEventLog(3)

	for i := 0; i < 5; i++ {
		ev, _, _ := MapEnvelope(envelope(t, "match_created", `{"matchId":`+string(rune('0'+i))+`}`), time.Now())
		ev.MatchID = i
		log.Add(ev)
	}

	events := log.Snapshot()
	if len(events) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(events))
	}
	if events[0].MatchID != 4 || events[1].MatchID != 3 || events[2].MatchID != 2 {
		t.Errorf("expected newest first [4 3 2], got [%d %d %d]",
			events[0].MatchID, events[1].MatchID, events[2].MatchID)
	}
}
