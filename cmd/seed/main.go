// Seeds a demo bot with a small published workflow: a welcome question,
// a name capture branch and a goodbye. Useful for local smoke testing.
package main

import (
	"encoding/json"
	"log"
	"os"

	"chatbot-flow-be/internal/model"
	"chatbot-flow-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := seed(db); err != nil {
		log.Fatal("Error: Seeding failed:", err)
	}
	log.Println("Seeding completed successfully")
}

func cfg(v map[string]interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		bot := &model.Bot{
			UserId:   uuid.New(),
			Name:     "Demo Support Bot",
			IsActive: true,
		}
		if err := tx.Create(bot).Error; err != nil {
			return err
		}

		workflow := &model.Workflow{
			BotId:    bot.Id,
			Name:     "Onboarding Flow",
			IsActive: true,
		}
		if err := tx.Create(workflow).Error; err != nil {
			return err
		}

		welcome := &model.WorkflowNode{
			WorkflowId: workflow.Id,
			NodeType:   "question",
			Config: cfg(map[string]interface{}{
				"question":         "Hi there! What's your name?",
				"fallback_message": "Sorry, I didn't catch that. What should I call you?",
			}),
		}
		saveName := &model.WorkflowNode{
			WorkflowId: workflow.Id,
			NodeType:   "action",
			Config: cfg(map[string]interface{}{
				"action": "save_variable",
				"params": map[string]string{
					"variable_name":  "name",
					"variable_value": "{{person}}",
				},
			}),
		}
		greet := &model.WorkflowNode{
			WorkflowId: workflow.Id,
			NodeType:   "message",
			Config: cfg(map[string]interface{}{
				"text": "Nice to meet you, {{name}}! Say bye whenever you're done.",
			}),
		}
		goodbye := &model.WorkflowNode{
			WorkflowId: workflow.Id,
			NodeType:   "end",
			Config: cfg(map[string]interface{}{
				"message": "Goodbye, {{name}}! Have a great day.",
			}),
		}
		for _, n := range []*model.WorkflowNode{welcome, saveName, greet, goodbye} {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}

		workflow.StartNodeId = &welcome.Id
		if err := tx.Save(workflow).Error; err != nil {
			return err
		}

		transitions := []*model.NodeTransition{
			{
				FromNodeId:  welcome.Id,
				ToNodeId:    saveName.Id,
				TriggerType: "auto",
				Priority:    0,
			},
			{
				FromNodeId:  saveName.Id,
				ToNodeId:    greet.Id,
				TriggerType: "auto",
				Priority:    0,
			},
			{
				FromNodeId:   greet.Id,
				ToNodeId:     goodbye.Id,
				TriggerType:  "intent",
				TriggerValue: ptr("goodbye"),
				Priority:     10,
			},
		}
		for _, t := range transitions {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}

		log.Printf("Seeded bot %s with workflow %s", bot.Id, workflow.Id)
		return nil
	})
}

func ptr(s string) *string { return &s }
