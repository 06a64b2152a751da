package game

// FieldView is a read-only copy of a field for display.
type FieldView struct {
	ID        int
	Name      string
	Kind      FieldKind
	Owner     int
	Level     int
	Mortgaged bool
	Color     string
}

type PlayerView struct {
	ID        int
	Position  int
	Cash      int
	JailTurns int
	Bankrupt  bool
}

// BoardView is a snapshot of the game that renderers may keep without
// observing later changes.
type BoardView struct {
	Turn    int
	Current int // ID of the player whose turn it is
	Fields  []FieldView
	Players []PlayerView
}

func (s *State) View() BoardView {
	v := BoardView{
		Turn:    s.Turn,
		Current: s.CurrentPlayer().ID,
		Fields:  make([]FieldView, 0, BoardSize),
		Players: make([]PlayerView, 0, len(s.Players)),
	}
	for _, f := range s.Board.Fields() {
		fv := FieldView{ID: f.ID, Name: f.Name, Kind: f.Kind, Owner: f.Owner(), Level: f.Level(), Mortgaged: f.Mortgaged()}
		if f.Estate != nil {
			fv.Color = f.Estate.Color
		}
		v.Fields = append(v.Fields, fv)
	}
	for _, p := range s.Players {
		v.Players = append(v.Players, PlayerView{ID: p.ID, Position: p.Position, Cash: p.Cash, JailTurns: p.JailTurns, Bankrupt: p.Bankrupt})
	}
	return v
}
