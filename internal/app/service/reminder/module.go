package reminder

import "go.uber.org/fx"

// Module exposes the reminder tick service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Provide(func(s *Service) Ticker { return s }),
	fx.Provide(NewHistory),
)
