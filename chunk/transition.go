package chunk

// Transition names the change between two consecutive window classes.
type Transition uint8

const (
	// TransitionOpenZero: first window of a scan is zero; a zero-run opens.
	TransitionOpenZero Transition = iota
	// TransitionOpenData: first window of a scan holds data.
	TransitionOpenData
	// TransitionZeroToData closes a zero-run and starts data.
	TransitionZeroToData
	// TransitionDataToZero starts a zero-run after data.
	TransitionDataToZero
	// TransitionZeroToZero extends the current zero-run.
	TransitionZeroToZero
	// TransitionDataToData continues a data run.
	TransitionDataToData
)

func (t Transition) String() string {
	switch t {
	case TransitionOpenZero:
		return "open-zero"
	case TransitionOpenData:
		return "open-data"
	case TransitionZeroToData:
		return "zero->data"
	case TransitionDataToZero:
		return "data->zero"
	case TransitionZeroToZero:
		return "zero->zero"
	default:
		return "data->data"
	}
}

// NextTransition selects the transition from prev to cur. cur must be
// ClassZero or ClassData.
func NextTransition(prev, cur Class) Transition {
	switch prev {
	case ClassZero:
		if cur == ClassZero {
			return TransitionZeroToZero
		}
		return TransitionZeroToData
	case ClassData:
		if cur == ClassZero {
			return TransitionDataToZero
		}
		return TransitionDataToData
	default:
		if cur == ClassZero {
			return TransitionOpenZero
		}
		return TransitionOpenData
	}
}
