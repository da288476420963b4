package component

type RatTag struct{}

var RatTagComponent = NewComponent[RatTag]()

type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()
