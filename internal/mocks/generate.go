package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RosterProvider --dir ../domain/asset --output domain/asset --outpkg assetmock --filename roster_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SquadProvider --dir ../domain/fantasy --output domain/fantasy --outpkg fantasymock --filename squad_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name GameweekResolver --dir ../domain/fantasy --output domain/fantasy --outpkg fantasymock --filename gameweek_resolver_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ManagerProvider --dir ../domain/recommendation --output domain/recommendation --outpkg recommendationmock --filename manager_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name NarrativeGenerator --dir ../domain/recommendation --output domain/recommendation --outpkg recommendationmock --filename narrative_generator_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/recommendation --output domain/recommendation --outpkg recommendationmock --filename repository_mock.go
