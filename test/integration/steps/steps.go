package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/backend/internal/domain/entity"
	"github.com/fintrack/backend/internal/integration/persistence/model"
)

func registerSteps(ctx *godog.ScenarioContext, test *testContext) {
	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in$`, test.theUserIsLoggedIn)
	ctx.Given(`^the user is not logged in$`, test.theUserIsNotLoggedIn)

	// Data setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a "([^"]*)" transaction of "([^"]*)" exists on "([^"]*)" in category "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^a budget of "([^"]*)" exists for category "([^"]*)" in month (\d+) of (\d+)$`, test.aBudgetExistsForCategory)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Email worker steps
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)
	ctx.Then(`^(\d+) alert emails? should have been sent$`, test.alertEmailsShouldHaveBeenSent)
	ctx.Then(`^an alert email with subject containing "([^"]*)" should have been sent$`, test.anAlertEmailWithSubjectContaining)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func (t *testContext) theAPIServerIsRunning() error {
	return nil
}

func (t *testContext) theCurrentDateIs(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	t.timeMock.SetCurrentTime(parsed.Add(12 * time.Hour))
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	user := entity.NewUser(email, "Test User", hashPassword(password))
	t.currentUserID = user.ID
	return t.db.DbConn.Create(model.UserFromEntity(user)).Error
}

func (t *testContext) theUserIsLoggedIn() error {
	if t.currentUserID == uuid.Nil {
		return errors.New("no user has been created")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": t.currentUserID.String(),
		"email":   "test@example.com",
		"exp":     jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":     jwt.NewNumericDate(now),
		"nbf":     jwt.NewNumericDate(now),
		"iss":     "fintrack",
		"sub":     t.currentUserID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}

	t.accessToken = signed
	return nil
}

func (t *testContext) theUserIsNotLoggedIn() error {
	t.accessToken = ""
	return nil
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashed)
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	category := entity.NewCategory(name, entity.CategoryType(categoryType), &t.currentUserID, "#6366F1", "tag", nil)
	t.currentCategoryID = category.ID
	return t.db.DbConn.Create(model.CategoryFromEntity(category)).Error
}

func (t *testContext) aTransactionExists(txType, amount, date, categoryName string) error {
	categoryID, err := t.findCategoryID(categoryName)
	if err != nil {
		return err
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	txn := entity.NewTransaction(t.currentUserID, entity.TransactionType(txType), amt, categoryID, parsedDate, "seeded transaction")
	t.lastTransactionID = txn.ID
	return t.db.DbConn.Create(model.TransactionFromEntity(txn)).Error
}

func (t *testContext) aBudgetExistsForCategory(amount, categoryName string, month, year int) error {
	categoryID, err := t.findCategoryID(categoryName)
	if err != nil {
		return err
	}

	limit, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	budget := entity.NewBudget(t.currentUserID, categoryID, limit, month, year)
	t.currentBudgetID = budget.ID
	return t.db.DbConn.Create(model.BudgetFromEntity(budget)).Error
}

func (t *testContext) findCategoryID(name string) (uuid.UUID, error) {
	var categoryModel model.CategoryModel
	err := t.db.DbConn.Where("name = ?", name).First(&categoryModel).Error
	if err != nil {
		return uuid.Nil, fmt.Errorf("category %q not found: %w", name, err)
	}
	return categoryModel.ID, nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.currentBudgetID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.uri + path

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(raw, &responseBody); err == nil {
		t.response.body = responseBody

		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				t.lastTransactionID = id
			}
		}
	} else {
		t.response.body = string(raw)
	}

	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.worker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) alertEmailsShouldHaveBeenSent(count int) error {
	sent := t.emailSender.SentEmails()
	if len(sent) != count {
		return fmt.Errorf("expected %d alert emails, got %d", count, len(sent))
	}
	return nil
}

func (t *testContext) anAlertEmailWithSubjectContaining(fragment string) error {
	for _, sent := range t.emailSender.SentEmails() {
		if strings.Contains(sent.Subject, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no sent email has subject containing %q", fragment)
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(fragment string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), fragment) {
		return fmt.Errorf("response does not contain %q (body: %s)", fragment, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field %q not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theResponseHeaderShouldContain(header, fragment string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := t.response.headers.Get(header)
	if !strings.Contains(value, fragment) {
		return fmt.Errorf("header %q is %q, expected it to contain %q", header, value, fragment)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

// getFieldValue resolves a dot-separated path into a decoded JSON value.
// Numeric path segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
