package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	userUsecase "github.com/allisson/fintrack/internal/user/usecase"
)

// RunCreateUser registers a user and issues its data key in the same transaction.
// When password is empty it is read from the first line of io.Reader, so it can be
// piped in instead of appearing in shell history.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UserUseCase,
	logger *slog.Logger,
	name string,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	user, err := userUseCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	err = writeResult(io.Writer, format,
		map[string]any{
			"id":           user.ID.String(),
			"name":         user.Name,
			"email":        user.Email,
			"has_data_key": user.HasWrappedDataKey(),
		},
		"",
		"User created successfully!",
		"User ID: "+user.ID.String(),
		"Email: "+user.Email,
	)
	if err != nil {
		return err
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("password is required")
	}
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}
