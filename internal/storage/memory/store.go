package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
)

var (
	_ storage.UserStore   = (*Store)(nil)
	_ storage.WalletStore = (*Store)(nil)
)

// Store keeps users, wallets and packets in process memory. Records are deep-copied
// on the way in and out so callers never share slices with the store.
// Transactions are serialized by a single write lock.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]models.User
	wallets map[int64]models.WalletState
	packets map[string]models.LuckyMoneyPacket
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:   make(map[int64]models.User),
		wallets: make(map[int64]models.WalletState),
		packets: make(map[string]models.LuckyMoneyPacket),
	}
}

// Close is a no-op kept for parity with the Postgres store.
func (s *Store) Close() {}

// CreateUser assigns an id and stores the user. Username and email are unique
// ignoring case, and lookups ignore case too.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) FindByUsernameOrEmail(_ context.Context, identifier string) (models.User, error) {
	return s.findUser(func(u models.User) bool {
		return strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier)
	})
}

func (s *Store) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if match(user) {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// CreateWallet stores a new wallet document; one per user.
func (s *Store) CreateWallet(_ context.Context, state models.WalletState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[state.UserID]; ok {
		return storage.ErrAlreadyExists
	}
	for _, existing := range s.wallets {
		if existing.Profile.WalletID == state.Profile.WalletID {
			return storage.ErrWalletNumberTaken
		}
	}
	cp, err := cloneWallet(state)
	if err != nil {
		return err
	}
	s.wallets[state.UserID] = cp
	return nil
}

func (s *Store) GetWallet(_ context.Context, userID int64) (models.WalletState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.wallets[userID]
	if !ok {
		return models.WalletState{}, storage.ErrNotFound
	}
	return cloneWallet(state)
}

// DeleteWallet removes the wallet and every packet the user created.
func (s *Store) DeleteWallet(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.wallets, userID)
	for shareID, p := range s.packets {
		if p.OwnerID == userID {
			delete(s.packets, shareID)
		}
	}
	return nil
}

func (s *Store) ListWalletUserIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.wallets))
	for id := range s.wallets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) GetPacket(_ context.Context, shareID string) (models.LuckyMoneyPacket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.packets[shareID]
	if !ok {
		return models.LuckyMoneyPacket{}, storage.ErrNotFound
	}
	return clonePacket(p), nil
}

// ListPacketsByOwner returns the user's packets, newest first.
func (s *Store) ListPacketsByOwner(_ context.Context, userID int64) ([]models.LuckyMoneyPacket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LuckyMoneyPacket{}
	for _, p := range s.packets {
		if p.OwnerID == userID {
			out = append(out, clonePacket(p))
		}
	}
	slices.SortFunc(out, func(a, b models.LuckyMoneyPacket) int {
		return b.CreationDate.Compare(a.CreationDate)
	})
	return out, nil
}

// InTx runs fn under the store's write lock and applies its writes only if fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:   s,
		wallets: make(map[int64]models.WalletState),
		packets: make(map[string]models.LuckyMoneyPacket),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for id, w := range tx.wallets {
		s.wallets[id] = w
	}
	for shareID, p := range tx.packets {
		s.packets[shareID] = p
	}
	return nil
}

type memTx struct {
	store   *Store
	wallets map[int64]models.WalletState
	packets map[string]models.LuckyMoneyPacket
}

func (t *memTx) Wallet(_ context.Context, userID int64) (models.WalletState, error) {
	if w, ok := t.wallets[userID]; ok {
		return cloneWallet(w)
	}
	w, ok := t.store.wallets[userID]
	if !ok {
		return models.WalletState{}, storage.ErrNotFound
	}
	return cloneWallet(w)
}

func (t *memTx) SaveWallet(_ context.Context, state models.WalletState) error {
	if _, ok := t.store.wallets[state.UserID]; !ok {
		return storage.ErrNotFound
	}
	cp, err := cloneWallet(state)
	if err != nil {
		return err
	}
	t.wallets[state.UserID] = cp
	return nil
}

func (t *memTx) Packet(_ context.Context, shareID string) (models.LuckyMoneyPacket, error) {
	if p, ok := t.packets[shareID]; ok {
		return clonePacket(p), nil
	}
	p, ok := t.store.packets[shareID]
	if !ok {
		return models.LuckyMoneyPacket{}, storage.ErrNotFound
	}
	return clonePacket(p), nil
}

func (t *memTx) SavePacket(_ context.Context, packet models.LuckyMoneyPacket) error {
	t.packets[packet.ShareID] = clonePacket(packet)
	return nil
}

func cloneWallet(state models.WalletState) (models.WalletState, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return models.WalletState{}, fmt.Errorf("encode wallet: %w", err)
	}
	var out models.WalletState
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.WalletState{}, fmt.Errorf("decode wallet: %w", err)
	}
	return out, nil
}

func clonePacket(p models.LuckyMoneyPacket) models.LuckyMoneyPacket {
	p.Claims = slices.Clone(p.Claims)
	return p
}
