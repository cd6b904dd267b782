package reset

type State string

const (
	StateStart           State = "Start"
	StateProcessesClosed State = "ProcessesClosed"
	StateBackedUp        State = "BackedUp"
	StateIdsGenerated    State = "IdsGenerated"
	StateRegistryUpdated State = "RegistryUpdated"
	StateConfigUpdated   State = "ConfigUpdated"
	StateDone            State = "Done"
	StateFailed          State = "Failed"
)

type RegistryOutcome string

const (
	RegistryUpdated  RegistryOutcome = "updated"
	RegistrySkipped  RegistryOutcome = "skipped"
	RegistryDisabled RegistryOutcome = "disabled"
	RegistryFailed   RegistryOutcome = "failed"
)
