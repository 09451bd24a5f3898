//go:generate mockgen -source=../services.go    -destination=./mock_services.go    -package=mocks
//go:generate mockgen -source=../design_sink.go -destination=./mock_design_sink.go -package=mocks
//go:generate mockgen -source=../local_store.go -destination=./mock_local_store.go -package=mocks
//go:generate mockgen -source=../logger.go      -destination=./mock_logger.go      -package=mocks

package mocks
