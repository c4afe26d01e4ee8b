package domain

type ViewKind int

const (
	Idle ViewKind = iota
	Loading
	Loaded
	Failed
)

func (k ViewKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

func (k ViewKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ViewState is what a screen knows about one resource.
type ViewState[T any] struct {
	Kind ViewKind `json:"kind"`
	Data T        `json:"data,omitempty"`
	Err  string   `json:"error,omitempty"`
}

func LoadedState[T any](data T) ViewState[T] { return ViewState[T]{Kind: Loaded, Data: data} }

func FailedState[T any](msg string) ViewState[T] { return ViewState[T]{Kind: Failed, Err: msg} }

func (v ViewState[T]) IsIdle() bool   { return v.Kind == Idle }
func (v ViewState[T]) IsLoaded() bool { return v.Kind == Loaded }
func (v ViewState[T]) IsFailed() bool { return v.Kind == Failed }
