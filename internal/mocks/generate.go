// Package mocks provides mock implementations for testing the sign-in flow.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockAuthAPI(ctrl)
//	mockAPI.EXPECT().Login(gomock.Any(), "a@b.com", gomock.Any()).Return(grant, nil)
package mocks

// Generate mocks for the port interfaces from internal/ports.
// This creates MockAuthAPI, MockRoleGate, MockSessionStore, MockEventBus and MockReconnector.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/opsgate/console/internal/ports AuthAPI,RoleGate,SessionStore,EventBus,Reconnector
