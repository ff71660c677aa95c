/*
Package network runs model-graph op chains over collated batches.

The network owns no weights and performs no optimizer stepping: models are
external collaborators behind the Model interface, and a ModelOp only routes
named batch tensors into a model and its results back into the batch mapping.
Loss-style ops that have nowhere meaningful to route a result may declare no
outputs, in which case the executor discards it by contract.
*/
package network
