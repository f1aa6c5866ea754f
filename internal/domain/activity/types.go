package activity

type Kind string

const (
	KindBirthRecorded     Kind = "BIRTH_RECORDED"
	KindMediaStored       Kind = "MEDIA_STORED"
	KindMediaLinked       Kind = "MEDIA_LINKED"
	KindTransferRequested Kind = "TRANSFER_REQUESTED"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBirthRecorded, KindMediaStored, KindMediaLinked, KindTransferRequested:
		return true
	default:
		return false
	}
}

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)
