package checkpoint

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/queue"
)

var _ commitRepo = &commitRepoMock{}

type commitRepoMock struct {
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error)
	FindLatestEnvCommitFunc        func(ctx context.Context, envID uuid.UUID) (*domain.FolderCommit, error)
	GetEnvNumberOfCommitsSinceFunc func(ctx context.Context, envID uuid.UUID, commitID uuid.UUID) (int, error)
	FindMultipleLatestCommitsFunc  func(ctx context.Context, folderIDs []uuid.UUID) (map[uuid.UUID]domain.FolderCommit, error)

	calls struct {
		FindByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		FindLatestEnvCommit []struct {
			Ctx   context.Context
			EnvID uuid.UUID
		}
		GetEnvNumberOfCommitsSince []struct {
			Ctx      context.Context
			EnvID    uuid.UUID
			CommitID uuid.UUID
		}
		FindMultipleLatestCommits []struct {
			Ctx       context.Context
			FolderIDs []uuid.UUID
		}
	}
	lockFindByID                   sync.RWMutex
	lockFindLatestEnvCommit        sync.RWMutex
	lockGetEnvNumberOfCommitsSince sync.RWMutex
	lockFindMultipleLatestCommits  sync.RWMutex
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

func (mock *commitRepoMock) FindLatestEnvCommit(ctx context.Context, envID uuid.UUID) (*domain.FolderCommit, error) {
	if mock.FindLatestEnvCommitFunc == nil {
		panic("commitRepoMock.FindLatestEnvCommitFunc: method is nil but commitRepo.FindLatestEnvCommit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		EnvID uuid.UUID
	}{Ctx: ctx, EnvID: envID}
	mock.lockFindLatestEnvCommit.Lock()
	mock.calls.FindLatestEnvCommit = append(mock.calls.FindLatestEnvCommit, callInfo)
	mock.lockFindLatestEnvCommit.Unlock()
	return mock.FindLatestEnvCommitFunc(ctx, envID)
}

func (mock *commitRepoMock) FindLatestEnvCommitCalls() []struct {
	Ctx   context.Context
	EnvID uuid.UUID
} {
	mock.lockFindLatestEnvCommit.RLock()
	calls := mock.calls.FindLatestEnvCommit
	mock.lockFindLatestEnvCommit.RUnlock()
	return calls
}

func (mock *commitRepoMock) GetEnvNumberOfCommitsSince(ctx context.Context, envID uuid.UUID, commitID uuid.UUID) (int, error) {
	if mock.GetEnvNumberOfCommitsSinceFunc == nil {
		panic("commitRepoMock.GetEnvNumberOfCommitsSinceFunc: method is nil but commitRepo.GetEnvNumberOfCommitsSince was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		EnvID    uuid.UUID
		CommitID uuid.UUID
	}{Ctx: ctx, EnvID: envID, CommitID: commitID}
	mock.lockGetEnvNumberOfCommitsSince.Lock()
	mock.calls.GetEnvNumberOfCommitsSince = append(mock.calls.GetEnvNumberOfCommitsSince, callInfo)
	mock.lockGetEnvNumberOfCommitsSince.Unlock()
	return mock.GetEnvNumberOfCommitsSinceFunc(ctx, envID, commitID)
}

func (mock *commitRepoMock) GetEnvNumberOfCommitsSinceCalls() []struct {
	Ctx      context.Context
	EnvID    uuid.UUID
	CommitID uuid.UUID
} {
	mock.lockGetEnvNumberOfCommitsSince.RLock()
	calls := mock.calls.GetEnvNumberOfCommitsSince
	mock.lockGetEnvNumberOfCommitsSince.RUnlock()
	return calls
}

func (mock *commitRepoMock) FindMultipleLatestCommits(ctx context.Context, folderIDs []uuid.UUID) (map[uuid.UUID]domain.FolderCommit, error) {
	if mock.FindMultipleLatestCommitsFunc == nil {
		panic("commitRepoMock.FindMultipleLatestCommitsFunc: method is nil but commitRepo.FindMultipleLatestCommits was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		FolderIDs []uuid.UUID
	}{Ctx: ctx, FolderIDs: folderIDs}
	mock.lockFindMultipleLatestCommits.Lock()
	mock.calls.FindMultipleLatestCommits = append(mock.calls.FindMultipleLatestCommits, callInfo)
	mock.lockFindMultipleLatestCommits.Unlock()
	return mock.FindMultipleLatestCommitsFunc(ctx, folderIDs)
}

func (mock *commitRepoMock) FindMultipleLatestCommitsCalls() []struct {
	Ctx       context.Context
	FolderIDs []uuid.UUID
} {
	mock.lockFindMultipleLatestCommits.RLock()
	calls := mock.calls.FindMultipleLatestCommits
	mock.lockFindMultipleLatestCommits.RUnlock()
	return calls
}

var _ treeCheckpointRepo = &treeCheckpointRepoMock{}

type treeCheckpointRepoMock struct {
	CreateFunc            func(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderTreeCheckpoint, error)
	FindLatestByEnvIDFunc func(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error)

	calls struct {
		Create []struct {
			Ctx            context.Context
			FolderCommitID uuid.UUID
		}
		FindLatestByEnvID []struct {
			Ctx   context.Context
			EnvID uuid.UUID
		}
	}
	lockCreate            sync.RWMutex
	lockFindLatestByEnvID sync.RWMutex
}

func (mock *treeCheckpointRepoMock) Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderTreeCheckpoint, error) {
	if mock.CreateFunc == nil {
		panic("treeCheckpointRepoMock.CreateFunc: method is nil but treeCheckpointRepo.Create was just called")
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

func (mock *treeCheckpointRepoMock) CreateCalls() []struct {
	Ctx            context.Context
	FolderCommitID uuid.UUID
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
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

var _ treeCheckpointResourceRepo = &treeCheckpointResourceRepoMock{}

type treeCheckpointResourceRepoMock struct {
	InsertManyFunc             func(ctx context.Context, rows []domain.FolderTreeCheckpointResource) error
	FindByTreeCheckpointIDFunc func(ctx context.Context, id uuid.UUID) ([]domain.FolderTreeCheckpointResource, error)

	calls struct {
		InsertMany []struct {
			Ctx  context.Context
			Rows []domain.FolderTreeCheckpointResource
		}
		FindByTreeCheckpointID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockInsertMany             sync.RWMutex
	lockFindByTreeCheckpointID sync.RWMutex
}

func (mock *treeCheckpointResourceRepoMock) InsertMany(ctx context.Context, rows []domain.FolderTreeCheckpointResource) error {
	if mock.InsertManyFunc == nil {
		panic("treeCheckpointResourceRepoMock.InsertManyFunc: method is nil but treeCheckpointResourceRepo.InsertMany was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rows []domain.FolderTreeCheckpointResource
	}{Ctx: ctx, Rows: rows}
	mock.lockInsertMany.Lock()
	mock.calls.InsertMany = append(mock.calls.InsertMany, callInfo)
	mock.lockInsertMany.Unlock()
	return mock.InsertManyFunc(ctx, rows)
}

func (mock *treeCheckpointResourceRepoMock) InsertManyCalls() []struct {
	Ctx  context.Context
	Rows []domain.FolderTreeCheckpointResource
} {
	mock.lockInsertMany.RLock()
	calls := mock.calls.InsertMany
	mock.lockInsertMany.RUnlock()
	return calls
}

func (mock *treeCheckpointResourceRepoMock) FindByTreeCheckpointID(ctx context.Context, id uuid.UUID) ([]domain.FolderTreeCheckpointResource, error) {
	if mock.FindByTreeCheckpointIDFunc == nil {
		panic("treeCheckpointResourceRepoMock.FindByTreeCheckpointIDFunc: method is nil but treeCheckpointResourceRepo.FindByTreeCheckpointID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockFindByTreeCheckpointID.Lock()
	mock.calls.FindByTreeCheckpointID = append(mock.calls.FindByTreeCheckpointID, callInfo)
	mock.lockFindByTreeCheckpointID.Unlock()
	return mock.FindByTreeCheckpointIDFunc(ctx, id)
}

func (mock *treeCheckpointResourceRepoMock) FindByTreeCheckpointIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockFindByTreeCheckpointID.RLock()
	calls := mock.calls.FindByTreeCheckpointID
	mock.lockFindByTreeCheckpointID.RUnlock()
	return calls
}

var _ folderRepo = &folderRepoMock{}

type folderRepoMock struct {
	FindByEnvIDFunc func(ctx context.Context, envID uuid.UUID) ([]domain.SecretFolder, error)

	calls struct {
		FindByEnvID []struct {
			Ctx   context.Context
			EnvID uuid.UUID
		}
	}
	lockFindByEnvID sync.RWMutex
}

func (mock *folderRepoMock) FindByEnvID(ctx context.Context, envID uuid.UUID) ([]domain.SecretFolder, error) {
	if mock.FindByEnvIDFunc == nil {
		panic("folderRepoMock.FindByEnvIDFunc: method is nil but folderRepo.FindByEnvID was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		EnvID uuid.UUID
	}{Ctx: ctx, EnvID: envID}
	mock.lockFindByEnvID.Lock()
	mock.calls.FindByEnvID = append(mock.calls.FindByEnvID, callInfo)
	mock.lockFindByEnvID.Unlock()
	return mock.FindByEnvIDFunc(ctx, envID)
}

func (mock *folderRepoMock) FindByEnvIDCalls() []struct {
	Ctx   context.Context
	EnvID uuid.UUID
} {
	mock.lockFindByEnvID.RLock()
	calls := mock.calls.FindByEnvID
	mock.lockFindByEnvID.RUnlock()
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

var _ jobQueue = &jobQueueMock{}

type jobQueueMock struct {
	QueueFunc func(ctx context.Context, name string, jobName string, payload any, opts queue.JobOptions) error

	calls struct {
		Queue []struct {
			Ctx     context.Context
			Name    string
			JobName string
			Payload any
			Opts    queue.JobOptions
		}
	}
	lockQueue sync.RWMutex
}

func (mock *jobQueueMock) Queue(ctx context.Context, name string, jobName string, payload any, opts queue.JobOptions) error {
	if mock.QueueFunc == nil {
		panic("jobQueueMock.QueueFunc: method is nil but jobQueue.Queue was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Name    string
		JobName string
		Payload any
		Opts    queue.JobOptions
	}{Ctx: ctx, Name: name, JobName: jobName, Payload: payload, Opts: opts}
	mock.lockQueue.Lock()
	mock.calls.Queue = append(mock.calls.Queue, callInfo)
	mock.lockQueue.Unlock()
	return mock.QueueFunc(ctx, name, jobName, payload, opts)
}

func (mock *jobQueueMock) QueueCalls() []struct {
	Ctx     context.Context
	Name    string
	JobName string
	Payload any
	Opts    queue.JobOptions
} {
	mock.lockQueue.RLock()
	calls := mock.calls.Queue
	mock.lockQueue.RUnlock()
	return calls
}

var _ Locker = &lockerMock{}

type lockerMock struct {
	AcquireLockFunc func(ctx context.Context, keys []string, ttl time.Duration) (Lock, error)
	DeleteItemFunc  func(ctx context.Context, key string) error

	calls struct {
		AcquireLock []struct {
			Ctx  context.Context
			Keys []string
			Ttl  time.Duration
		}
		DeleteItem []struct {
			Ctx context.Context
			Key string
		}
	}
	lockAcquireLock sync.RWMutex
	lockDeleteItem  sync.RWMutex
}

func (mock *lockerMock) AcquireLock(ctx context.Context, keys []string, ttl time.Duration) (Lock, error) {
	if mock.AcquireLockFunc == nil {
		panic("lockerMock.AcquireLockFunc: method is nil but Locker.AcquireLock was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Keys []string
		Ttl  time.Duration
	}{Ctx: ctx, Keys: keys, Ttl: ttl}
	mock.lockAcquireLock.Lock()
	mock.calls.AcquireLock = append(mock.calls.AcquireLock, callInfo)
	mock.lockAcquireLock.Unlock()
	return mock.AcquireLockFunc(ctx, keys, ttl)
}

func (mock *lockerMock) AcquireLockCalls() []struct {
	Ctx  context.Context
	Keys []string
	Ttl  time.Duration
} {
	mock.lockAcquireLock.RLock()
	calls := mock.calls.AcquireLock
	mock.lockAcquireLock.RUnlock()
	return calls
}

func (mock *lockerMock) DeleteItem(ctx context.Context, key string) error {
	if mock.DeleteItemFunc == nil {
		panic("lockerMock.DeleteItemFunc: method is nil but Locker.DeleteItem was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockDeleteItem.Lock()
	mock.calls.DeleteItem = append(mock.calls.DeleteItem, callInfo)
	mock.lockDeleteItem.Unlock()
	return mock.DeleteItemFunc(ctx, key)
}

func (mock *lockerMock) DeleteItemCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDeleteItem.RLock()
	calls := mock.calls.DeleteItem
	mock.lockDeleteItem.RUnlock()
	return calls
}

var _ Lock = &lockMock{}

type lockMock struct {
	ReleaseFunc func(ctx context.Context) error

	calls struct {
		Release []struct {
			Ctx context.Context
		}
	}
	lockRelease sync.RWMutex
}

func (mock *lockMock) Release(ctx context.Context) error {
	if mock.ReleaseFunc == nil {
		panic("lockMock.ReleaseFunc: method is nil but Lock.Release was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRelease.Lock()
	mock.calls.Release = append(mock.calls.Release, callInfo)
	mock.lockRelease.Unlock()
	return mock.ReleaseFunc(ctx)
}

func (mock *lockMock) ReleaseCalls() []struct {
	Ctx context.Context
} {
	mock.lockRelease.RLock()
	calls := mock.calls.Release
	mock.lockRelease.RUnlock()
	return calls
}
