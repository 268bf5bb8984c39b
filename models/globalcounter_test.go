package models

func (ms *ModelSuite) Test_IncrementGlobalCounter() {
	first, err := IncrementGlobalCounter(ms.DB, GlobalCounterClaimNumber)
	ms.NoError(err)
	ms.Equal(1, first, "a new counter starts at 1")

	second, err := IncrementGlobalCounter(ms.DB, GlobalCounterClaimNumber)
	ms.NoError(err)
	ms.Equal(first+1, second)

	// independent counters do not interfere
	other, err := IncrementGlobalCounter(ms.DB, "other_counter")
	ms.NoError(err)
	ms.Equal(1, other)

	third, err := IncrementGlobalCounter(ms.DB, GlobalCounterClaimNumber)
	ms.NoError(err)
	ms.Equal(second+1, third)
}
