package model

// Reason explains why a submitted pair was rejected
type Reason string

const (
	ReasonNotANumber        Reason = "not_a_number"
	ReasonDuplicatePosition Reason = "duplicate_position"
	ReasonOutOfRange        Reason = "out_of_range"
	ReasonEmptyCell         Reason = "empty_cell"
	ReasonPatternMismatch   Reason = "pattern_mismatch"
	ReasonNoPath            Reason = "no_path"
	ReasonDuplicateInBatch  Reason = "duplicate_in_batch"
)

// Verdict is the outcome of checking one pair: either Accepted or Rejected
type Verdict interface {
	Selection() Pair
	isVerdict()
}

// Accepted carries the connecting path of a valid match
type Accepted struct {
	Pair Pair
	Path Path
}

// Rejected carries the reason a pair could not be matched
type Rejected struct {
	Pair   Pair
	Reason Reason
}

// Selection returns the pair that was checked
func (a Accepted) Selection() Pair { return a.Pair }

// Selection returns the pair that was checked
func (r Rejected) Selection() Pair { return r.Pair }

func (Accepted) isVerdict() {}
func (Rejected) isVerdict() {}

// SplitVerdicts partitions verdicts preserving input order
func SplitVerdicts(verdicts []Verdict) ([]Accepted, []Rejected) {
	var accepted []Accepted
	var rejected []Rejected
	for _, v := range verdicts {
		switch v := v.(type) {
		case Accepted:
			accepted = append(accepted, v)
		case Rejected:
			rejected = append(rejected, v)
		}
	}
	return accepted, rejected
}
