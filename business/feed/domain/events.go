// Package domain defines the live feed event model: the wire envelope, the
// closed event union and the envelope-to-event mapping.
package domain

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// Kind classifies a feed event after mapping.
type Kind string

const (
	KindAnswer                Kind = "answer"
	KindAnswerJudged          Kind = "answer_judged"
	KindCommentary            Kind = "commentary"
	KindMatchStart            Kind = "match_start"
	KindMatchEnd              Kind = "match_end"
	KindAgentRegistered       Kind = "agent_registered"
	KindPersonalitiesAssigned Kind = "personalities_assigned"
	KindQuestionPosted        Kind = "question_posted"
	KindAnswerRevealed        Kind = "answer_revealed"
	KindMatchCancelled        Kind = "match_cancelled"
	KindBurn                  Kind = "burn"

	KindBountyCreated         Kind = "bounty_created"
	KindBountyAgentJoined     Kind = "bounty_agent_joined"
	KindBountyAnswerSubmitted Kind = "bounty_answer_submitted"
	KindBountyAnswerEvaluated Kind = "bounty_answer_evaluated"
	KindBountySettled         Kind = "bounty_settled"
	KindWinnerRewardClaimed   Kind = "winner_reward_claimed"
	KindProportionalClaimed   Kind = "proportional_claimed"
	KindRefundClaimed         Kind = "refund_claimed"
	KindReputationUpdated     Kind = "reputation_updated"
)

// Envelope is the raw wire message: a type tag and an untyped payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Event is one mapped feed entry. Optional fields are zero when the source
// payload omits them; amounts stay base-unit strings.
type Event struct {
	ID         string
	Kind       Kind
	ReceivedAt time.Time

	MatchID      int
	Agent        string
	Answer       string
	NeuronBurned string
	Commentary   string
	Persona      string
	Question     string
	Category     string
	Winner       string
	Prize        string
	Reason       string
	PlayerCount  int
	EntryFee     string

	BountyID int
	Reward   string
	Score    float64
}

var eventSeq atomic.Uint64

// newID builds a client-side unique id in the form kind-millis-seq.
func newID(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d", kind, now.UnixMilli(), eventSeq.Add(1))
}

// payload is the superset of fields seen across event payloads.
type payload struct {
	MatchID      int     `json:"matchId"`
	AgentAddr    string  `json:"agentAddr"`
	AgentID      string  `json:"agentId"`
	AnswerText   string  `json:"answerText"`
	Answer       string  `json:"answer"`
	NeuronBurned string  `json:"neuronBurned"`
	Text         string  `json:"text"`
	QuestionText string  `json:"questionText"`
	Category     string  `json:"category"`
	WinnerAddr   string  `json:"winnerAddr"`
	PrizeMon     string  `json:"prizeMon"`
	Reason       string  `json:"reason"`
	PlayerCount  int     `json:"playerCount"`
	EntryFee     string  `json:"entryFee"`
	CreatedAt    string  `json:"createdAt"`
	Amount       string  `json:"amount"`
	BountyID     int     `json:"bountyId"`
	RewardAmount string  `json:"rewardAmount"`
	TotalScore   float64 `json:"totalScore"`
	Score        float64 `json:"score"`
}

// MapEnvelope translates one wire envelope into a feed event. ok is false
// for unknown event types, which are dropped. A malformed payload returns
// an error and must not tear down the connection.
func MapEnvelope(env Envelope, now time.Time) (Event, bool, error) {
	var p payload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, false, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
	}

	ev := Event{ReceivedAt: now, MatchID: p.MatchID, BountyID: p.BountyID}

	switch env.Type {
	case "answer_submitted":
		ev.Kind = KindAnswer
		ev.Agent = p.AgentAddr
		ev.Answer = p.AnswerText
		ev.NeuronBurned = p.NeuronBurned

	case "answer_verified":
		ev.Kind = KindAnswerJudged
		ev.Agent = p.AgentAddr

	case "commentary":
		ev.Kind = KindCommentary
		ev.Commentary = p.Text
		ev.Persona = p.AgentID
		if p.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
				ev.ReceivedAt = t
			}
		}

	case "match_created":
		ev.Kind = KindMatchStart
		ev.EntryFee = p.EntryFee

	case "match_settled":
		ev.Kind = KindMatchEnd
		ev.Winner = p.WinnerAddr
		ev.Prize = p.PrizeMon

	case "agent_registered":
		ev.Kind = KindAgentRegistered
		ev.Agent = p.AgentAddr
		ev.PlayerCount = p.PlayerCount

	case "personalities_assigned":
		ev.Kind = KindPersonalitiesAssigned

	case "question_posted":
		ev.Kind = KindQuestionPosted
		ev.Question = p.QuestionText
		ev.Category = p.Category

	case "answer_revealed":
		ev.Kind = KindAnswerRevealed
		ev.Answer = p.Answer

	case "match_cancelled", "match_timeout":
		ev.Kind = KindMatchCancelled
		ev.Reason = p.Reason

	case "neuron_burned":
		ev.Kind = KindBurn
		ev.Agent = p.AgentAddr
		ev.NeuronBurned = pick(p.NeuronBurned, p.Amount)

	case "bounty_created":
		ev.Kind = KindBountyCreated
		ev.Agent = p.AgentAddr
		ev.Category = p.Category
		ev.Reward = p.RewardAmount

	case "bounty_agent_joined":
		ev.Kind = KindBountyAgentJoined
		ev.Agent = p.AgentAddr

	case "bounty_answer_submitted":
		ev.Kind = KindBountyAnswerSubmitted
		ev.Agent = p.AgentAddr
		ev.Answer = p.AnswerText

	case "bounty_answer_evaluated":
		ev.Kind = KindBountyAnswerEvaluated
		ev.Agent = p.AgentAddr
		ev.Score = pickFloat(p.TotalScore, p.Score)

	case "bounty_settled":
		ev.Kind = KindBountySettled
		ev.Winner = p.WinnerAddr
		ev.Reward = p.RewardAmount

	case "winner_reward_claimed":
		ev.Kind = KindWinnerRewardClaimed
		ev.Agent = p.AgentAddr
		ev.Reward = pick(p.RewardAmount, p.Amount)

	case "proportional_claimed":
		ev.Kind = KindProportionalClaimed
		ev.Agent = p.AgentAddr
		ev.Reward = pick(p.RewardAmount, p.Amount)

	case "refund_claimed":
		ev.Kind = KindRefundClaimed
		ev.Agent = p.AgentAddr
		ev.Reward = pick(p.RewardAmount, p.Amount)

	case "reputation_updated":
		ev.Kind = KindReputationUpdated
		ev.Agent = p.AgentAddr
		ev.Score = pickFloat(p.Score, p.TotalScore)

	default:
		return Event{}, false, nil
	}

	ev.ID = newID(ev.Kind, now)
	return ev, true, nil
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func pickFloat(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}
