package mocks

//go:generate mockery --name EventStore --srcpkg github.com/aevon-lab/behavior-ledger/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Suggester --srcpkg github.com/aevon-lab/behavior-ledger/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
