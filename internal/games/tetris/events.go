package tetris

// EventHandler receives gameplay events from a Session. Handlers run
// synchronously inside Tick and input calls.
type EventHandler interface {
	OnSpawn(p ActivePiece)
	OnLock(p ActivePiece)
	OnLinesCleared(rows []int, total int)
	OnGameOver(score int)
}

// HandlerFuncs adapts optional functions to EventHandler. Nil fields are
// skipped.
type HandlerFuncs struct {
	Spawn        func(p ActivePiece)
	Lock         func(p ActivePiece)
	LinesCleared func(rows []int, total int)
	GameOver     func(score int)
}

func (h HandlerFuncs) OnSpawn(p ActivePiece) {
	if h.Spawn != nil {
		h.Spawn(p)
	}
}

func (h HandlerFuncs) OnLock(p ActivePiece) {
	if h.Lock != nil {
		h.Lock(p)
	}
}

func (h HandlerFuncs) OnLinesCleared(rows []int, total int) {
	if h.LinesCleared != nil {
		h.LinesCleared(rows, total)
	}
}

func (h HandlerFuncs) OnGameOver(score int) {
	if h.GameOver != nil {
		h.GameOver(score)
	}
}

// Handlers fans events out to every handler in order.
type Handlers []EventHandler

func (hs Handlers) OnSpawn(p ActivePiece) {
	for _, h := range hs {
		h.OnSpawn(p)
	}
}

func (hs Handlers) OnLock(p ActivePiece) {
	for _, h := range hs {
		h.OnLock(p)
	}
}

func (hs Handlers) OnLinesCleared(rows []int, total int) {
	for _, h := range hs {
		h.OnLinesCleared(rows, total)
	}
}

func (hs Handlers) OnGameOver(score int) {
	for _, h := range hs {
		h.OnGameOver(score)
	}
}

// ScoreFunc converts the rows cleared by one lock into points.
type ScoreFunc func(rows int) int

// LineScore awards one point per cleared row.
func LineScore(rows int) int { return rows }
