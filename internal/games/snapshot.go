package games

import "ailab/internal/domain"

// Snapshot is the full view state of a game
type Snapshot struct {
	Game         Kind                 `json:"game"`
	Phase        domain.Phase         `json:"phase"`
	Stage        IntroStage           `json:"stage,omitempty"`
	Pending      bool                 `json:"pending"`
	Pool         []domain.Item        `json:"pool"`
	Held         *domain.Item         `json:"held,omitempty"`
	Placed       []domain.Placement   `json:"placed"`
	Score        int                  `json:"score"`
	Total        int                  `json:"total"`
	Message      *domain.MessageShown `json:"message,omitempty"`
	Dragging     string               `json:"dragging,omitempty"`
	ScrollLocked bool                 `json:"scrollLocked"`
	Timers       int                  `json:"timers"`
	VideoSkipped bool                 `json:"videoSkipped,omitempty"`

	Sorting *SortingState `json:"sorting,omitempty"`
	Quiz    *QuizState    `json:"quiz,omitempty"`
	Train   *TrainState   `json:"train,omitempty"`
}

// SortingState is the Data Detective part of a snapshot
type SortingState struct {
	Zones      map[string][]domain.Item `json:"zones"`
	Banner     string                   `json:"banner,omitempty"`
	Generated  map[string]string        `json:"generated"`
	Generating []string                 `json:"generating"`
}

// QuizState is the Spot the AI part of a snapshot
type QuizState struct {
	Question    int   `json:"question"` // 1-based, 0 before the first question
	Questions   int   `json:"questions"`
	PassPercent int   `json:"passPercent"`
	Passed      *bool `json:"passed,omitempty"`
}

// TrainState is the Teach the AI part of a snapshot
type TrainState struct {
	AwaitingVerdict bool     `json:"awaitingVerdict"`
	ChatBusy        bool     `json:"chatBusy"`
	Generated       []string `json:"generated"`
}
