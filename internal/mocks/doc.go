// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// Two styles live here. The testify/mock types (UserStore, NoteStore) record
// expectations:
//
//	users := new(mocks.UserStore)
//	users.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
//	defer users.AssertExpectations(t)
//
// The function-field types (MockJWTService, MockPasswordVerifier) return fixed
// values unless a Fn field overrides them.
package mocks
