package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "userhub/internal/models"
    "userhub/internal/repository"
    "userhub/internal/seed"
)

func defaultRules() AssignmentRules {
    return AssignmentRules{
        InstitutionalDomains: []string{"school.edu", "ufba.br"},
        ConsumerDomains:      []string{"gmail.com", "gmail.com.br"},
    }
}

// seededRepo answers FreePlan and RoleByName like a seeded database.
func seededRepo() *mockUserRepository {
    return &mockUserRepository{
        freePlanFunc: func(_ context.Context) (*models.Plan, error) {
            return &models.Plan{ID: 1, Name: seed.PlanFree, IsFree: true}, nil
        },
        roleByNameFunc: func(_ context.Context, name string) (*models.Role, error) {
            switch name {
            case seed.RoleStudent:
                return &models.Role{ID: 2, Name: name}, nil
            case seed.RoleSubscriber:
                return &models.Role{ID: 3, Name: name}, nil
            }
            return nil, repository.ErrNotFound
        },
    }
}

func TestRegister_HashesPasswordAndAssignsDefaults(t *testing.T) {
    t.Parallel()

    repo := seededRepo()
    svc := NewUsers(repo, defaultRules(), discardLogger())

    user, err := svc.Register(context.Background(), "Aluno@School.EDU", " Aluno ", "senha123")
    require.NoError(t, err)

    assert.Equal(t, "aluno@school.edu", user.Email)
    assert.Equal(t, "Aluno", user.Name)
    assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha123")))
    assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("other")))

    require.NotNil(t, user.PlanID)
    assert.Equal(t, int64(1), *user.PlanID, "free plan is the default fallback")
    require.NotNil(t, user.RoleID)
    assert.Equal(t, seed.RoleStudent, user.RoleName(), "institutional domain maps to the student role")
}

func TestRegister_ConsumerDomainGetsSubscriberRole(t *testing.T) {
    t.Parallel()

    repo := seededRepo()
    svc := NewUsers(repo, defaultRules(), discardLogger())

    user, err := svc.Register(context.Background(), "person@gmail.com", "Person", "senha123")
    require.NoError(t, err)
    assert.Equal(t, seed.RoleSubscriber, user.RoleName())
}

func TestRegister_UnknownDomainGetsNoRole(t *testing.T) {
    t.Parallel()

    repo := seededRepo()
    svc := NewUsers(repo, defaultRules(), discardLogger())

    user, err := svc.Register(context.Background(), "person@corp.example", "Person", "senha123")
    require.NoError(t, err)
    assert.Nil(t, user.RoleID)
    require.NotNil(t, user.PlanID, "plan fallback still applies")
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
    t.Parallel()

    svc := NewUsers(&mockUserRepository{}, defaultRules(), discardLogger())
    _, err := svc.Register(context.Background(), "a@b.com", "A", "short")
    assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmailSurfaces(t *testing.T) {
    t.Parallel()

    repo := &mockUserRepository{
        createFunc: func(_ context.Context, _ *models.User) error {
            return repository.ErrEmailTaken
        },
    }
    svc := NewUsers(repo, defaultRules(), discardLogger())
    _, err := svc.Register(context.Background(), "dup@b.com", "Dup", "senha123")
    assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestApplyDefaults_NeverOverwrites(t *testing.T) {
    t.Parallel()

    repo := seededRepo()
    repo.updateFunc = func(_ context.Context, _ *models.User) error {
        t.Fatal("nothing changed, no update expected")
        return nil
    }
    svc := NewUsers(repo, defaultRules(), discardLogger())

    planID, roleID := int64(9), int64(8)
    user := &models.User{ID: 1, Email: "aluno@school.edu", PlanID: &planID, RoleID: &roleID}
    svc.ApplyDefaults(context.Background(), user)

    assert.Equal(t, int64(9), *user.PlanID)
    assert.Equal(t, int64(8), *user.RoleID)
}

func TestApplyDefaults_MissingSeedsTolerated(t *testing.T) {
    t.Parallel()

    repo := &mockUserRepository{} // no seeds at all
    svc := NewUsers(repo, defaultRules(), discardLogger())

    user := &models.User{ID: 1, Email: "aluno@school.edu"}
    svc.ApplyDefaults(context.Background(), user)

    assert.Nil(t, user.PlanID)
    assert.Nil(t, user.RoleID)
}

func TestChangePassword(t *testing.T) {
    t.Parallel()

    hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
    require.NoError(t, err)

    var newHash string
    repo := &mockUserRepository{
        findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
            return &models.User{ID: id, PasswordHash: string(hash), IsActive: true}, nil
        },
        setPasswordFunc: func(_ context.Context, _ int64, h string) error {
            newHash = h
            return nil
        },
    }
    svc := NewUsers(repo, defaultRules(), discardLogger())

    t.Run("wrong current password", func(t *testing.T) {
        err := svc.ChangePassword(context.Background(), 1, "not-it", "new-password")
        assert.ErrorIs(t, err, ErrInvalidCredentials)
    })

    t.Run("success", func(t *testing.T) {
        err := svc.ChangePassword(context.Background(), 1, "old-password", "new-password")
        require.NoError(t, err)
        assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password")))
    })

    t.Run("federated account rejected", func(t *testing.T) {
        repo := &mockUserRepository{
            findByIDFunc: func(_ context.Context, id int64) (*models.User, error) {
                return &models.User{ID: id, PasswordHash: "", IsActive: true}, nil
            },
        }
        svc := NewUsers(repo, defaultRules(), discardLogger())
        err := svc.ChangePassword(context.Background(), 1, "", "new-password")
        assert.ErrorIs(t, err, ErrPasswordDisabled)
    })
}
