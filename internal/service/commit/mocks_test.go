package commit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
)

var _ commitRepo = &commitRepoMock{}

type commitRepoMock struct {
	CreateFunc                  func(ctx context.Context, c domain.FolderCommit) (*domain.FolderCommit, error)
	InsertChangesFunc           func(ctx context.Context, changes []domain.FolderCommitChange) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error)
	FindByFolderIDFunc          func(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error)
	FindChangesByCommitIDFunc   func(ctx context.Context, commitID uuid.UUID) ([]domain.FolderCommitChange, error)
	FindLatestCommitFunc        func(ctx context.Context, folderID uuid.UUID) (*domain.FolderCommit, error)
	GetNumberOfCommitsSinceFunc func(ctx context.Context, folderID uuid.UUID, commitID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   domain.FolderCommit
		}
		InsertChanges []struct {
			Ctx     context.Context
			Changes []domain.FolderCommitChange
		}
		FindByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		FindByFolderID []struct {
			Ctx      context.Context
			FolderID uuid.UUID
		}
		FindChangesByCommitID []struct {
			Ctx      context.Context
			CommitID uuid.UUID
		}
		FindLatestCommit []struct {
			Ctx      context.Context
			FolderID uuid.UUID
		}
		GetNumberOfCommitsSince []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			CommitID uuid.UUID
		}
	}
	lockCreate                  sync.RWMutex
	lockInsertChanges           sync.RWMutex
	lockFindByID                sync.RWMutex
	lockFindByFolderID          sync.RWMutex
	lockFindChangesByCommitID   sync.RWMutex
	lockFindLatestCommit        sync.RWMutex
	lockGetNumberOfCommitsSince sync.RWMutex
}

func (mock *commitRepoMock) Create(ctx context.Context, c domain.FolderCommit) (*domain.FolderCommit, error) {
	if mock.CreateFunc == nil {
		panic("commitRepoMock.CreateFunc: method is nil but commitRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.FolderCommit
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *commitRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.FolderCommit
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *commitRepoMock) InsertChanges(ctx context.Context, changes []domain.FolderCommitChange) error {
	if mock.InsertChangesFunc == nil {
		panic("commitRepoMock.InsertChangesFunc: method is nil but commitRepo.InsertChanges was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Changes []domain.FolderCommitChange
	}{Ctx: ctx, Changes: changes}
	mock.lockInsertChanges.Lock()
	mock.calls.InsertChanges = append(mock.calls.InsertChanges, callInfo)
	mock.lockInsertChanges.Unlock()
	return mock.InsertChangesFunc(ctx, changes)
}

func (mock *commitRepoMock) InsertChangesCalls() []struct {
	Ctx     context.Context
	Changes []domain.FolderCommitChange
} {
	mock.lockInsertChanges.RLock()
	calls := mock.calls.InsertChanges
	mock.lockInsertChanges.RUnlock()
	return calls
}

func (mock *commitRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error) {
	if mock.FindByIDFunc == nil {
		panic("commitRepoMock.FindByIDFunc: method is nil but commitRepo.FindByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockFindByID.Lock()
	mock.calls.FindByID = append(mock.calls.FindByID, callInfo)
	mock.lockFindByID.Unlock()
	return mock.FindByIDFunc(ctx, id)
}

func (mock *commitRepoMock) FindByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockFindByID.RLock()
	calls := mock.calls.FindByID
	mock.lockFindByID.RUnlock()
	return calls
}

func (mock *commitRepoMock) FindByFolderID(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error) {
	if mock.FindByFolderIDFunc == nil {
		panic("commitRepoMock.FindByFolderIDFunc: method is nil but commitRepo.FindByFolderID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
	}{Ctx: ctx, FolderID: folderID}
	mock.lockFindByFolderID.Lock()
	mock.calls.FindByFolderID = append(mock.calls.FindByFolderID, callInfo)
	mock.lockFindByFolderID.Unlock()
	return mock.FindByFolderIDFunc(ctx, folderID)
}

func (mock *commitRepoMock) FindByFolderIDCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
} {
	mock.lockFindByFolderID.RLock()
	calls := mock.calls.FindByFolderID
	mock.lockFindByFolderID.RUnlock()
	return calls
}

func (mock *commitRepoMock) FindChangesByCommitID(ctx context.Context, commitID uuid.UUID) ([]domain.FolderCommitChange, error) {
	if mock.FindChangesByCommitIDFunc == nil {
		panic("commitRepoMock.FindChangesByCommitIDFunc: method is nil but commitRepo.FindChangesByCommitID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		CommitID uuid.UUID
	}{Ctx: ctx, CommitID: commitID}
	mock.lockFindChangesByCommitID.Lock()
	mock.calls.FindChangesByCommitID = append(mock.calls.FindChangesByCommitID, callInfo)
	mock.lockFindChangesByCommitID.Unlock()
	return mock.FindChangesByCommitIDFunc(ctx, commitID)
}

func (mock *commitRepoMock) FindChangesByCommitIDCalls() []struct {
	Ctx      context.Context
	CommitID uuid.UUID
} {
	mock.lockFindChangesByCommitID.RLock()
	calls := mock.calls.FindChangesByCommitID
	mock.lockFindChangesByCommitID.RUnlock()
	return calls
}

func (mock *commitRepoMock) FindLatestCommit(ctx context.Context, folderID uuid.UUID) (*domain.FolderCommit, error) {
	if mock.FindLatestCommitFunc == nil {
		panic("commitRepoMock.FindLatestCommitFunc: method is nil but commitRepo.FindLatestCommit was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
	}{Ctx: ctx, FolderID: folderID}
	mock.lockFindLatestCommit.Lock()
	mock.calls.FindLatestCommit = append(mock.calls.FindLatestCommit, callInfo)
	mock.lockFindLatestCommit.Unlock()
	return mock.FindLatestCommitFunc(ctx, folderID)
}

func (mock *commitRepoMock) FindLatestCommitCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
} {
	mock.lockFindLatestCommit.RLock()
	calls := mock.calls.FindLatestCommit
	mock.lockFindLatestCommit.RUnlock()
	return calls
}

func (mock *commitRepoMock) GetNumberOfCommitsSince(ctx context.Context, folderID uuid.UUID, commitID uuid.UUID) (int, error) {
	if mock.GetNumberOfCommitsSinceFunc == nil {
		panic("commitRepoMock.GetNumberOfCommitsSinceFunc: method is nil but commitRepo.GetNumberOfCommitsSince was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		CommitID uuid.UUID
	}{Ctx: ctx, FolderID: folderID, CommitID: commitID}
	mock.lockGetNumberOfCommitsSince.Lock()
	mock.calls.GetNumberOfCommitsSince = append(mock.calls.GetNumberOfCommitsSince, callInfo)
	mock.lockGetNumberOfCommitsSince.Unlock()
	return mock.GetNumberOfCommitsSinceFunc(ctx, folderID, commitID)
}

func (mock *commitRepoMock) GetNumberOfCommitsSinceCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	CommitID uuid.UUID
} {
	mock.lockGetNumberOfCommitsSince.RLock()
	calls := mock.calls.GetNumberOfCommitsSince
	mock.lockGetNumberOfCommitsSince.RUnlock()
	return calls
}

var _ folderRepo = &folderRepoMock{}

type folderRepoMock struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.SecretFolder, error)

	calls struct {
		FindByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockFindByID sync.RWMutex
}

func (mock *folderRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretFolder, error) {
	if mock.FindByIDFunc == nil {
		panic("folderRepoMock.FindByIDFunc: method is nil but folderRepo.FindByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockFindByID.Lock()
	mock.calls.FindByID = append(mock.calls.FindByID, callInfo)
	mock.lockFindByID.Unlock()
	return mock.FindByIDFunc(ctx, id)
}

func (mock *folderRepoMock) FindByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockFindByID.RLock()
	calls := mock.calls.FindByID
	mock.lockFindByID.RUnlock()
	return calls
}

var _ folderCheckpointRepo = &folderCheckpointRepoMock{}

type folderCheckpointRepoMock struct {
	CreateFunc               func(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderCheckpoint, error)
	InsertResourcesFunc      func(ctx context.Context, rows []domain.FolderCheckpointResource) error
	FindByFolderIDFunc       func(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error)
	FindLatestByFolderIDFunc func(ctx context.Context, folderID uuid.UUID) (*domain.FolderCheckpoint, error)
	FindResourcesFunc        func(ctx context.Context, checkpointID uuid.UUID) ([]domain.FolderCheckpointResource, error)

	calls struct {
		Create []struct {
			Ctx            context.Context
			FolderCommitID uuid.UUID
		}
		InsertResources []struct {
			Ctx  context.Context
			Rows []domain.FolderCheckpointResource
		}
		FindByFolderID []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			Limit    int
		}
		FindLatestByFolderID []struct {
			Ctx      context.Context
			FolderID uuid.UUID
		}
		FindResources []struct {
			Ctx          context.Context
			CheckpointID uuid.UUID
		}
	}
	lockCreate               sync.RWMutex
	lockInsertResources      sync.RWMutex
	lockFindByFolderID       sync.RWMutex
	lockFindLatestByFolderID sync.RWMutex
	lockFindResources        sync.RWMutex
}

func (mock *folderCheckpointRepoMock) Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderCheckpoint, error) {
	if mock.CreateFunc == nil {
		panic("folderCheckpointRepoMock.CreateFunc: method is nil but folderCheckpointRepo.Create was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		FolderCommitID uuid.UUID
	}{Ctx: ctx, FolderCommitID: folderCommitID}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, folderCommitID)
}

func (mock *folderCheckpointRepoMock) CreateCalls() []struct {
	Ctx            context.Context
	FolderCommitID uuid.UUID
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *folderCheckpointRepoMock) InsertResources(ctx context.Context, rows []domain.FolderCheckpointResource) error {
	if mock.InsertResourcesFunc == nil {
		panic("folderCheckpointRepoMock.InsertResourcesFunc: method is nil but folderCheckpointRepo.InsertResources was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rows []domain.FolderCheckpointResource
	}{Ctx: ctx, Rows: rows}
	mock.lockInsertResources.Lock()
	mock.calls.InsertResources = append(mock.calls.InsertResources, callInfo)
	mock.lockInsertResources.Unlock()
	return mock.InsertResourcesFunc(ctx, rows)
}

func (mock *folderCheckpointRepoMock) InsertResourcesCalls() []struct {
	Ctx  context.Context
	Rows []domain.FolderCheckpointResource
} {
	mock.lockInsertResources.RLock()
	calls := mock.calls.InsertResources
	mock.lockInsertResources.RUnlock()
	return calls
}

func (mock *folderCheckpointRepoMock) FindByFolderID(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error) {
	if mock.FindByFolderIDFunc == nil {
		panic("folderCheckpointRepoMock.FindByFolderIDFunc: method is nil but folderCheckpointRepo.FindByFolderID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		Limit    int
	}{Ctx: ctx, FolderID: folderID, Limit: limit}
	mock.lockFindByFolderID.Lock()
	mock.calls.FindByFolderID = append(mock.calls.FindByFolderID, callInfo)
	mock.lockFindByFolderID.Unlock()
	return mock.FindByFolderIDFunc(ctx, folderID, limit)
}

func (mock *folderCheckpointRepoMock) FindByFolderIDCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	Limit    int
} {
	mock.lockFindByFolderID.RLock()
	calls := mock.calls.FindByFolderID
	mock.lockFindByFolderID.RUnlock()
	return calls
}

func (mock *folderCheckpointRepoMock) FindLatestByFolderID(ctx context.Context, folderID uuid.UUID) (*domain.FolderCheckpoint, error) {
	if mock.FindLatestByFolderIDFunc == nil {
		panic("folderCheckpointRepoMock.FindLatestByFolderIDFunc: method is nil but folderCheckpointRepo.FindLatestByFolderID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
	}{Ctx: ctx, FolderID: folderID}
	mock.lockFindLatestByFolderID.Lock()
	mock.calls.FindLatestByFolderID = append(mock.calls.FindLatestByFolderID, callInfo)
	mock.lockFindLatestByFolderID.Unlock()
	return mock.FindLatestByFolderIDFunc(ctx, folderID)
}

func (mock *folderCheckpointRepoMock) FindLatestByFolderIDCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
} {
	mock.lockFindLatestByFolderID.RLock()
	calls := mock.calls.FindLatestByFolderID
	mock.lockFindLatestByFolderID.RUnlock()
	return calls
}

func (mock *folderCheckpointRepoMock) FindResources(ctx context.Context, checkpointID uuid.UUID) ([]domain.FolderCheckpointResource, error) {
	if mock.FindResourcesFunc == nil {
		panic("folderCheckpointRepoMock.FindResourcesFunc: method is nil but folderCheckpointRepo.FindResources was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CheckpointID uuid.UUID
	}{Ctx: ctx, CheckpointID: checkpointID}
	mock.lockFindResources.Lock()
	mock.calls.FindResources = append(mock.calls.FindResources, callInfo)
	mock.lockFindResources.Unlock()
	return mock.FindResourcesFunc(ctx, checkpointID)
}

func (mock *folderCheckpointRepoMock) FindResourcesCalls() []struct {
	Ctx          context.Context
	CheckpointID uuid.UUID
} {
	mock.lockFindResources.RLock()
	calls := mock.calls.FindResources
	mock.lockFindResources.RUnlock()
	return calls
}

var _ resourceProvider = &resourceProviderMock{}

type resourceProviderMock struct {
	FindFolderResourcesFunc func(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCheckpointResource, error)

	calls struct {
		FindFolderResources []struct {
			Ctx      context.Context
			FolderID uuid.UUID
		}
	}
	lockFindFolderResources sync.RWMutex
}

func (mock *resourceProviderMock) FindFolderResources(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCheckpointResource, error) {
	if mock.FindFolderResourcesFunc == nil {
		panic("resourceProviderMock.FindFolderResourcesFunc: method is nil but resourceProvider.FindFolderResources was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
	}{Ctx: ctx, FolderID: folderID}
	mock.lockFindFolderResources.Lock()
	mock.calls.FindFolderResources = append(mock.calls.FindFolderResources, callInfo)
	mock.lockFindFolderResources.Unlock()
	return mock.FindFolderResourcesFunc(ctx, folderID)
}

func (mock *resourceProviderMock) FindFolderResourcesCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
} {
	mock.lockFindFolderResources.RLock()
	calls := mock.calls.FindFolderResources
	mock.lockFindFolderResources.RUnlock()
	return calls
}

var _ treeCheckpointRepo = &treeCheckpointRepoMock{}

type treeCheckpointRepoMock struct {
	FindLatestByEnvIDFunc func(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error)

	calls struct {
		FindLatestByEnvID []struct {
			Ctx   context.Context
			EnvID uuid.UUID
		}
	}
	lockFindLatestByEnvID sync.RWMutex
}

func (mock *treeCheckpointRepoMock) FindLatestByEnvID(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error) {
	if mock.FindLatestByEnvIDFunc == nil {
		panic("treeCheckpointRepoMock.FindLatestByEnvIDFunc: method is nil but treeCheckpointRepo.FindLatestByEnvID was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		EnvID uuid.UUID
	}{Ctx: ctx, EnvID: envID}
	mock.lockFindLatestByEnvID.Lock()
	mock.calls.FindLatestByEnvID = append(mock.calls.FindLatestByEnvID, callInfo)
	mock.lockFindLatestByEnvID.Unlock()
	return mock.FindLatestByEnvIDFunc(ctx, envID)
}

func (mock *treeCheckpointRepoMock) FindLatestByEnvIDCalls() []struct {
	Ctx   context.Context
	EnvID uuid.UUID
} {
	mock.lockFindLatestByEnvID.RLock()
	calls := mock.calls.FindLatestByEnvID
	mock.lockFindLatestByEnvID.RUnlock()
	return calls
}

var _ checkpointer = &checkpointerMock{}

type checkpointerMock struct {
	CreateFolderTreeCheckpointFunc func(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (checkpoint.BuildResult, error)
	ScheduleTreeCheckpointFunc     func(ctx context.Context, envID uuid.UUID) error

	calls struct {
		CreateFolderTreeCheckpoint []struct {
			Ctx            context.Context
			EnvID          uuid.UUID
			FolderCommitID *uuid.UUID
		}
		ScheduleTreeCheckpoint []struct {
			Ctx   context.Context
			EnvID uuid.UUID
		}
	}
	lockCreateFolderTreeCheckpoint sync.RWMutex
	lockScheduleTreeCheckpoint     sync.RWMutex
}

func (mock *checkpointerMock) CreateFolderTreeCheckpoint(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (checkpoint.BuildResult, error) {
	if mock.CreateFolderTreeCheckpointFunc == nil {
		panic("checkpointerMock.CreateFolderTreeCheckpointFunc: method is nil but checkpointer.CreateFolderTreeCheckpoint was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		EnvID          uuid.UUID
		FolderCommitID *uuid.UUID
	}{Ctx: ctx, EnvID: envID, FolderCommitID: folderCommitID}
	mock.lockCreateFolderTreeCheckpoint.Lock()
	mock.calls.CreateFolderTreeCheckpoint = append(mock.calls.CreateFolderTreeCheckpoint, callInfo)
	mock.lockCreateFolderTreeCheckpoint.Unlock()
	return mock.CreateFolderTreeCheckpointFunc(ctx, envID, folderCommitID)
}

func (mock *checkpointerMock) CreateFolderTreeCheckpointCalls() []struct {
	Ctx            context.Context
	EnvID          uuid.UUID
	FolderCommitID *uuid.UUID
} {
	mock.lockCreateFolderTreeCheckpoint.RLock()
	calls := mock.calls.CreateFolderTreeCheckpoint
	mock.lockCreateFolderTreeCheckpoint.RUnlock()
	return calls
}

func (mock *checkpointerMock) ScheduleTreeCheckpoint(ctx context.Context, envID uuid.UUID) error {
	if mock.ScheduleTreeCheckpointFunc == nil {
		panic("checkpointerMock.ScheduleTreeCheckpointFunc: method is nil but checkpointer.ScheduleTreeCheckpoint was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		EnvID uuid.UUID
	}{Ctx: ctx, EnvID: envID}
	mock.lockScheduleTreeCheckpoint.Lock()
	mock.calls.ScheduleTreeCheckpoint = append(mock.calls.ScheduleTreeCheckpoint, callInfo)
	mock.lockScheduleTreeCheckpoint.Unlock()
	return mock.ScheduleTreeCheckpointFunc(ctx, envID)
}

func (mock *checkpointerMock) ScheduleTreeCheckpointCalls() []struct {
	Ctx   context.Context
	EnvID uuid.UUID
} {
	mock.lockScheduleTreeCheckpoint.RLock()
	calls := mock.calls.ScheduleTreeCheckpoint
	mock.lockScheduleTreeCheckpoint.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
