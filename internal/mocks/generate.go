package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name BattleSource --dir ../usecase --output usecase --outpkg usecasemock --filename battle_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/battle --output domain/battle --outpkg battlemock --filename repository_mock.go
